package overtime

import "context"

// OvertimeRepository defines data access for overtime sessions.
// All methods include companyID to prevent cross-company data access.
type OvertimeRepository interface {
	// Create inserts a new active session. The overtime_sessions table
	// carries a partial unique index on (employee_id) WHERE status =
	// 'active'; implementations translate a unique violation into
	// ErrActiveSessionExists.
	Create(ctx context.Context, session Session) (Session, error)

	// GetByID retrieves a session by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Session, error)

	// GetActiveByEmployee returns the employee's active session, or nil.
	GetActiveByEmployee(ctx context.Context, employeeID string, companyID string) (*Session, error)

	// Complete atomically closes an active session: sets the ot-out fields,
	// total hours and status = 'completed' only where status = 'active'.
	// Returns ErrSessionNotActive when the conditional update matches no row.
	Complete(ctx context.Context, session Session) error

	// Approve marks a completed session approved by the given reviewer.
	Approve(ctx context.Context, id string, reviewerID string, companyID string) error

	// ListStaleActive returns active sessions older than the given number
	// of hours. Used by the auto-close cron job.
	ListStaleActive(ctx context.Context, olderThanHours int) ([]Session, error)
}
