package attendance

import (
	"time"
)

type Status string

const (
	StatusOnTime  Status = "on_time"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusHoliday Status = "holiday"
)

// Record is one attendance record per (employee, calendar date). Created on
// clock-in, mutated on clock-out, and after that only through an approved
// correction once LockedForPayroll is set.
type Record struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	Date              time.Time
	SiteID            *string
	ShiftID           *string
	ClockInTime       *time.Time
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutTime      *time.Time
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	Status            Status
	HoursWorked       *float64
	OvertimeHours     *float64
	LockedForPayroll  bool
	IsProvisional     bool
	CorrectionID      *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined for list/read responses
	EmployeeName *string
}

// HasClockedIn reports whether the record has a clock-in time.
func (r Record) HasClockedIn() bool {
	return r.ClockInTime != nil
}

// HasClockedOut reports whether the record has a clock-out time.
func (r Record) HasClockedOut() bool {
	return r.ClockOutTime != nil
}
