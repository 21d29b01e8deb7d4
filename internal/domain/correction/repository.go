package correction

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// CorrectionRepository defines data access for correction requests.
// All methods include companyID to prevent cross-company data access.
type CorrectionRepository interface {
	// Create inserts a new pending request
	Create(ctx context.Context, request Request) (Request, error)

	// GetByID retrieves a request by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Request, error)

	// Resolve performs the conditional review write: UPDATE ... WHERE
	// status = 'pending'. When the guard matches no row it returns an
	// AlreadyReviewedError carrying the current status, so two concurrent
	// reviews cannot both land. Runs on tx so approval and the parent
	// record update commit atomically.
	Resolve(ctx context.Context, tx pgx.Tx, id string, status Status, reviewerID string, notes *string, companyID string) (Request, error)

	// List returns requests for the review queue (all employees) or an
	// employee's own submissions when employeeID is non-nil.
	List(ctx context.Context, filter ListFilter, employeeID *string, companyID string) ([]Request, int64, error)
}
