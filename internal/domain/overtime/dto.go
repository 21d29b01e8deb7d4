package overtime

import (
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/validator"
)

type OTClockInRequest struct {
	SiteID             string  `json:"site_id"`
	AttendanceRecordID string  `json:"attendance_record_id"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
}

func (r *OTClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id is required",
		})
	}

	if validator.IsEmpty(r.AttendanceRecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_record_id",
			Message: "attendance_record_id is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OTClockOutRequest struct {
	OTSessionID string `json:"ot_session_id"`
	// SiteID is optional; when sent it must match the ot-in site.
	SiteID    string  `json:"site_id,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *OTClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OTSessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "ot_session_id",
			Message: "ot_session_id is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionResponse struct {
	ID                 string        `json:"id"`
	EmployeeID         string        `json:"employee_id"`
	AttendanceRecordID string        `json:"attendance_record_id"`
	SiteID             string        `json:"site_id"`
	OTInTime           string        `json:"ot_in_time"`
	OTOutTime          *string       `json:"ot_out_time,omitempty"`
	Status             SessionStatus `json:"status"`
	TotalOTHours       *float64      `json:"total_ot_hours,omitempty"`
	IsApproved         bool          `json:"is_approved"`
}

type OTClockInResponse struct {
	OTSession SessionResponse `json:"ot_session"`
}

type OTClockOutResponse struct {
	OTSession  SessionResponse `json:"ot_session"`
	TotalHours float64         `json:"total_hours"`
}

type ApproveSessionRequest struct {
	ID string `json:"-"`
}

// MapSessionToResponse converts a Session entity to its API representation.
func MapSessionToResponse(s Session) SessionResponse {
	var otOut *string
	if s.OTOutTime != nil {
		formatted := s.OTOutTime.Format(time.RFC3339)
		otOut = &formatted
	}

	return SessionResponse{
		ID:                 s.ID,
		EmployeeID:         s.EmployeeID,
		AttendanceRecordID: s.AttendanceRecordID,
		SiteID:             s.SiteID,
		OTInTime:           s.OTInTime.Format(time.RFC3339),
		OTOutTime:          otOut,
		Status:             s.Status,
		TotalOTHours:       s.TotalOTHours,
		IsApproved:         s.IsApproved,
	}
}
