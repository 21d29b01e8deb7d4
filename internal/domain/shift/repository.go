package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	// GetEffectiveShift returns the shift assigned to the employee whose
	// effective-date range covers the given date.
	GetEffectiveShift(ctx context.Context, employeeID string, date time.Time, companyID string) (Shift, error)

	// GetByID retrieves a shift by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)
}
