package leave

import (
	"context"
	"time"
)

// LeaveRepository answers the clock-in precondition checks: whether the
// employee has approved leave covering a date, and whether the date is a
// public holiday for the company.
type LeaveRepository interface {
	HasApprovedLeave(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error)
	IsPublicHoliday(ctx context.Context, date time.Time, companyID string) (bool, error)
}
