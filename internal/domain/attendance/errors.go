package attendance

import (
	"errors"
	"time"
)

// Attendance domain errors
var (
	// Clock-in errors
	ErrAlreadyClockedIn    = errors.New("you have already clocked in today")
	ErrOutsideClockInRange = errors.New("you are outside the allowed radius for clock-in")
	ErrOnLeaveOrHoliday    = errors.New("clock-in is not allowed on leave days or public holidays")

	// Clock-out errors
	ErrAlreadyClockedOut    = errors.New("you have already clocked out")
	ErrOutsideClockOutRange = errors.New("you are outside the allowed radius for clock-out")
	ErrLockedForPayroll     = errors.New("attendance record is locked for payroll, please contact HR")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrNotRecordOwner = errors.New("attendance record does not belong to you")
)

// AlreadyClockedInError carries the existing clock-in time so clients can
// render an idempotent "already done" state instead of a hard failure.
type AlreadyClockedInError struct {
	ExistingClockIn time.Time
}

func (e *AlreadyClockedInError) Error() string {
	return ErrAlreadyClockedIn.Error()
}

func (e *AlreadyClockedInError) Is(target error) bool {
	return target == ErrAlreadyClockedIn
}

// AlreadyClockedOutError mirrors AlreadyClockedInError for clock-out.
type AlreadyClockedOutError struct {
	ExistingClockOut time.Time
}

func (e *AlreadyClockedOutError) Error() string {
	return ErrAlreadyClockedOut.Error()
}

func (e *AlreadyClockedOutError) Is(target error) bool {
	return target == ErrAlreadyClockedOut
}
