package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// All methods include companyID to prevent cross-company data access.
type AttendanceRepository interface {
	// Create inserts a new record. The attendance_records table carries a
	// unique constraint on (employee_id, date); implementations translate a
	// unique violation into ErrAlreadyClockedIn so concurrent double
	// clock-ins cannot slip past the application-level pre-check.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// date; returns nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Record, error)

	// Update persists mutable fields of an existing record
	Update(ctx context.Context, record Record) error

	// ApplyCorrection mutates only the supplied clock fields, sets
	// locked_for_payroll = true and is_provisional = false, and links the
	// correction. Runs inside the review transaction.
	ApplyCorrection(ctx context.Context, recordID string, correctionID string, clockIn, clockOut *time.Time, companyID string) error

	// ListByCompanyAndDate returns all records for a company on a date.
	// Used by the status recompute cron pass.
	ListByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]Record, error)
}
