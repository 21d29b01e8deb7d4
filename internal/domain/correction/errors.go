package correction

import "errors"

// Correction domain errors
var (
	ErrCorrectionNotFound = errors.New("correction request not found")
	ErrReasonTooShort     = errors.New("reason must be at least 20 characters")
	ErrNotAuthorized      = errors.New("not authorized to review correction requests")
)

// AlreadyReviewedError reports the current status so the caller sees which
// decision already landed.
type AlreadyReviewedError struct {
	CurrentStatus Status
}

func (e *AlreadyReviewedError) Error() string {
	return "correction request has already been reviewed, current status: " + string(e.CurrentStatus)
}
