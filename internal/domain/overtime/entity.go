package overtime

import "time"

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session tracks one contiguous overtime interval tied to an attendance
// record. An employee may hold at most one active session at a time, and a
// session may only be opened once the linked record has a clock-out time.
type Session struct {
	ID                 string
	EmployeeID         string
	CompanyID          string
	AttendanceRecordID string
	SiteID             string
	OTInTime           time.Time
	OTInLatitude       float64
	OTInLongitude      float64
	OTOutTime          *time.Time
	OTOutLatitude      *float64
	OTOutLongitude     *float64
	Status             SessionStatus
	TotalOTHours       *float64
	IsApproved         bool
	ApprovedBy         *string
	ApprovedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsActive reports whether the session is still open.
func (s Session) IsActive() bool {
	return s.Status == SessionStatusActive
}
