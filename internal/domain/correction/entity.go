package correction

import "time"

type CorrectionType string

const (
	TypeClockIn    CorrectionType = "clock_in"
	TypeClockOut   CorrectionType = "clock_out"
	TypeBoth       CorrectionType = "both"
	TypeFullRecord CorrectionType = "full_record"
)

func AllCorrectionTypes() []string {
	return []string{
		string(TypeClockIn),
		string(TypeClockOut),
		string(TypeBoth),
		string(TypeFullRecord),
	}
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// MinReasonLength is enforced at submission time.
const MinReasonLength = 20

// Request is a proposed amendment to one attendance record. It is resolved
// exactly once: pending -> approved or pending -> rejected, never back.
type Request struct {
	ID                 string
	AttendanceRecordID string
	EmployeeID         string
	CompanyID          string
	CorrectionType     CorrectionType
	RequestedClockIn   *time.Time
	RequestedClockOut  *time.Time
	Reason             string
	AttachmentURL      *string
	SubmissionDeadline time.Time
	IsWithinDeadline   bool
	Status             Status
	ReviewedBy         *string
	ReviewerNotes      *string
	ReviewedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined for the HR review queue
	EmployeeName   *string
	AttendanceDate *time.Time
}

// IsPending reports whether the request still awaits a decision.
func (r Request) IsPending() bool {
	return r.Status == StatusPending
}
