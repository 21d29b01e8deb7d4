package correction

import "context"

// CorrectionService defines business logic for the correction workflow.
type CorrectionService interface {
	// Submit creates a pending correction request against a record the
	// caller owns. The submission deadline is informational: late requests
	// are stored with is_within_deadline = false, not rejected.
	Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error)

	// Review approves or rejects a pending request (admin only). Approval
	// applies the requested clock values to the parent record and locks it
	// for payroll in the same transaction.
	Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error)

	// List returns the review queue for admins or the caller's own
	// submissions for regular employees.
	List(ctx context.Context, filter ListFilter) (ListResponse, error)
}
