package employee

import "context"

// EmployeeRepository resolves authenticated callers to employee records.
// All methods include companyID to prevent cross-company data access.
type EmployeeRepository interface {
	// GetByID retrieves an employee by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetByUserID resolves the employee linked to an authenticated user
	GetByUserID(ctx context.Context, userID string, companyID string) (Employee, error)

	// ListActiveByCompany returns all active employees for a company.
	// Used by the absence-marking cron job.
	ListActiveByCompany(ctx context.Context, companyID string) ([]Employee, error)

	// ListCompanyIDs returns the distinct company IDs with active employees.
	ListCompanyIDs(ctx context.Context) ([]string, error)

	// GetAdminUserIDs returns user IDs with an admin role for a company.
	// Used to fan out correction-review notifications.
	GetAdminUserIDs(ctx context.Context, companyID string) ([]string, error)
}
