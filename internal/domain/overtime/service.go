package overtime

import "context"

// OvertimeService defines business logic for the overtime session lifecycle.
type OvertimeService interface {
	// OTClockIn opens an overtime session. The linked attendance record
	// must already be clocked out and the employee must have no other
	// active session.
	OTClockIn(ctx context.Context, req OTClockInRequest) (OTClockInResponse, error)

	// OTClockOut closes the caller's active session. The site must match
	// the ot-in site and the caller must be inside its geofence.
	OTClockOut(ctx context.Context, req OTClockOutRequest) (OTClockOutResponse, error)

	// ApproveSession marks a completed session approved (admin only).
	ApproveSession(ctx context.Context, req ApproveSessionRequest) (SessionResponse, error)
}
