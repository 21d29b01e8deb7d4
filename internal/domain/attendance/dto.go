package attendance

import (
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/overtime"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/validator"
)

type ClockInRequest struct {
	SiteID    string  `json:"site_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id is required",
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

type ClockOutRequest struct {
	AttendanceRecordID string  `json:"attendance_record_id"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

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

type RecordResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	Date              string   `json:"date"`
	SiteID            *string  `json:"site_id,omitempty"`
	ShiftID           *string  `json:"shift_id,omitempty"`
	ClockInTime       *string  `json:"clock_in_time,omitempty"`
	ClockOutTime      *string  `json:"clock_out_time,omitempty"`
	ClockInLatitude   *float64 `json:"clock_in_latitude,omitempty"`
	ClockInLongitude  *float64 `json:"clock_in_longitude,omitempty"`
	ClockOutLatitude  *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64 `json:"clock_out_longitude,omitempty"`
	Status            Status   `json:"status"`
	HoursWorked       *float64 `json:"hours_worked,omitempty"`
	OvertimeHours     *float64 `json:"overtime_hours,omitempty"`
	LockedForPayroll  bool     `json:"locked_for_payroll"`
	IsProvisional     bool     `json:"is_provisional"`
	CorrectionID      *string  `json:"correction_id,omitempty"`
}

type ClockInResponse struct {
	Attendance RecordResponse `json:"attendance"`
}

type ClockOutResponse struct {
	Attendance    RecordResponse `json:"attendance"`
	HoursWorked   *float64       `json:"hours_worked,omitempty"`
	OvertimeHours *float64       `json:"overtime_hours,omitempty"`
}

type MyStatusResponse struct {
	Attendance      *RecordResponse           `json:"attendance"`
	HasClockedIn    bool                      `json:"has_clocked_in"`
	HasClockedOut   bool                      `json:"has_clocked_out"`
	ActiveOTSession *overtime.SessionResponse `json:"active_ot_session"`
}

// MapRecordToResponse converts a Record entity to its API representation.
func MapRecordToResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		EmployeeName:      rec.EmployeeName,
		Date:              rec.Date.Format("2006-01-02"),
		SiteID:            rec.SiteID,
		ShiftID:           rec.ShiftID,
		ClockInTime:       timePtrToString(rec.ClockInTime),
		ClockOutTime:      timePtrToString(rec.ClockOutTime),
		ClockInLatitude:   rec.ClockInLatitude,
		ClockInLongitude:  rec.ClockInLongitude,
		ClockOutLatitude:  rec.ClockOutLatitude,
		ClockOutLongitude: rec.ClockOutLongitude,
		Status:            rec.Status,
		HoursWorked:       rec.HoursWorked,
		OvertimeHours:     rec.OvertimeHours,
		LockedForPayroll:  rec.LockedForPayroll,
		IsProvisional:     rec.IsProvisional,
		CorrectionID:      rec.CorrectionID,
	}
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
