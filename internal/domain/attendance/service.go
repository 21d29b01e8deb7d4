package attendance

import (
	"context"
)

// AttendanceService defines business logic for the clock-in/out lifecycle
// and the caller-scoped status read.
type AttendanceService interface {
	// ClockIn creates today's attendance record after the leave-day,
	// geofence and duplicate-day checks pass.
	ClockIn(ctx context.Context, req ClockInRequest) (ClockInResponse, error)

	// ClockOut sets the clock-out fields on a record the caller owns and
	// computes hours worked and overtime from the effective shift.
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockOutResponse, error)

	// MyStatus returns today's record (or nil) plus clock booleans and any
	// active overtime session for the caller.
	MyStatus(ctx context.Context) (MyStatusResponse, error)
}
