package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/leave"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

// NewLeaveRepository creates a PostgreSQL-backed leave repository.
func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// HasApprovedLeave implements leave.LeaveRepository.
func (r *leaveRepository) HasApprovedLeave(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND company_id = $2
			  AND status = 'approved'
			  AND start_date <= $3
			  AND end_date >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, companyID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}

// IsPublicHoliday implements leave.LeaveRepository.
func (r *leaveRepository) IsPublicHoliday(ctx context.Context, date time.Time, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM public_holidays
			WHERE company_id = $1
			  AND holiday_date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check public holiday: %w", err)
	}

	return exists, nil
}
