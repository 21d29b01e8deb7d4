package correction

import (
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/validator"
)

type SubmitRequest struct {
	AttendanceRecordID string  `json:"attendance_record_id"`
	CorrectionType     string  `json:"correction_type"`
	RequestedClockIn   *string `json:"requested_clock_in,omitempty"`  // RFC3339
	RequestedClockOut  *string `json:"requested_clock_out,omitempty"` // RFC3339
	Reason             string  `json:"reason"`
	AttachmentURL      *string `json:"attachment_url,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceRecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_record_id",
			Message: "attendance_record_id is required",
		})
	}

	if !validator.IsInSlice(r.CorrectionType, AllCorrectionTypes()) {
		errs = append(errs, validator.ValidationError{
			Field:   "correction_type",
			Message: "correction_type must be one of: clock_in, clock_out, both, full_record",
		})
	}

	if r.RequestedClockIn != nil && *r.RequestedClockIn != "" {
		if _, ok := validator.IsValidDateTime(*r.RequestedClockIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_clock_in",
				Message: "requested_clock_in must be an RFC3339 timestamp",
			})
		}
	}

	if r.RequestedClockOut != nil && *r.RequestedClockOut != "" {
		if _, ok := validator.IsValidDateTime(*r.RequestedClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_clock_out",
				Message: "requested_clock_out must be an RFC3339 timestamp",
			})
		}
	}

	switch CorrectionType(r.CorrectionType) {
	case TypeClockIn:
		if r.RequestedClockIn == nil || *r.RequestedClockIn == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_clock_in",
				Message: "requested_clock_in is required for clock_in corrections",
			})
		}
	case TypeClockOut:
		if r.RequestedClockOut == nil || *r.RequestedClockOut == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_clock_out",
				Message: "requested_clock_out is required for clock_out corrections",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

type ReviewRequest struct {
	CorrectionID  string  `json:"correction_id"`
	Action        string  `json:"action"`
	ReviewerNotes *string `json:"reviewer_notes,omitempty"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CorrectionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "correction_id",
			Message: "correction_id is required",
		})
	}

	if !validator.IsInSlice(r.Action, []string{string(ActionApprove), string(ActionReject)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be approve or reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID                 string         `json:"id"`
	AttendanceRecordID string         `json:"attendance_record_id"`
	EmployeeID         string         `json:"employee_id"`
	EmployeeName       *string        `json:"employee_name,omitempty"`
	AttendanceDate     *string        `json:"attendance_date,omitempty"`
	CorrectionType     CorrectionType `json:"correction_type"`
	RequestedClockIn   *string        `json:"requested_clock_in,omitempty"`
	RequestedClockOut  *string        `json:"requested_clock_out,omitempty"`
	Reason             string         `json:"reason"`
	AttachmentURL      *string        `json:"attachment_url,omitempty"`
	SubmissionDeadline string         `json:"submission_deadline"`
	IsWithinDeadline   bool           `json:"is_within_deadline"`
	Status             Status         `json:"status"`
	ReviewedBy         *string        `json:"reviewed_by,omitempty"`
	ReviewerNotes      *string        `json:"reviewer_notes,omitempty"`
	ReviewedAt         *string        `json:"reviewed_at,omitempty"`
	CreatedAt          string         `json:"created_at"`
}

type SubmitResponse struct {
	Correction     RequestResponse `json:"correction"`
	Deadline       string          `json:"deadline"`
	WithinDeadline bool            `json:"within_deadline"`
}

type ReviewResponse struct {
	Correction RequestResponse `json:"correction"`
	Action     ReviewAction    `json:"action"`
}

type ListFilter struct {
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{
			string(StatusPending),
			string(StatusApproved),
			string(StatusRejected),
		}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListResponse struct {
	TotalCount  int64             `json:"total_count"`
	Page        int               `json:"page"`
	Limit       int               `json:"limit"`
	Corrections []RequestResponse `json:"corrections"`
}

// MapRequestToResponse converts a Request entity to its API representation.
func MapRequestToResponse(req Request) RequestResponse {
	var attendanceDate *string
	if req.AttendanceDate != nil {
		formatted := req.AttendanceDate.Format("2006-01-02")
		attendanceDate = &formatted
	}

	return RequestResponse{
		ID:                 req.ID,
		AttendanceRecordID: req.AttendanceRecordID,
		EmployeeID:         req.EmployeeID,
		EmployeeName:       req.EmployeeName,
		AttendanceDate:     attendanceDate,
		CorrectionType:     req.CorrectionType,
		RequestedClockIn:   timePtrToString(req.RequestedClockIn),
		RequestedClockOut:  timePtrToString(req.RequestedClockOut),
		Reason:             req.Reason,
		AttachmentURL:      req.AttachmentURL,
		SubmissionDeadline: req.SubmissionDeadline.Format(time.RFC3339),
		IsWithinDeadline:   req.IsWithinDeadline,
		Status:             req.Status,
		ReviewedBy:         req.ReviewedBy,
		ReviewerNotes:      req.ReviewerNotes,
		ReviewedAt:         timePtrToString(req.ReviewedAt),
		CreatedAt:          req.CreatedAt.Format(time.RFC3339),
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
