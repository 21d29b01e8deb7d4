package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/shift"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

// NewShiftRepository creates a PostgreSQL-backed shift repository.
func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	s.id, s.company_id, s.name, s.start_time, s.end_time,
	s.grace_period_minutes, s.is_next_day_end, s.effective_from, s.effective_to,
	s.created_at, s.updated_at`

func scanShift(row pgx.Row, sh *shift.Shift) error {
	return row.Scan(
		&sh.ID, &sh.CompanyID, &sh.Name, &sh.StartTime, &sh.EndTime,
		&sh.GracePeriodMinutes, &sh.IsNextDayEnd, &sh.EffectiveFrom, &sh.EffectiveTo,
		&sh.CreatedAt, &sh.UpdatedAt,
	)
}

// GetEffectiveShift implements shift.ShiftRepository.
func (r *shiftRepository) GetEffectiveShift(ctx context.Context, employeeID string, date time.Time, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	// Most recent assignment whose effective range covers the date wins.
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		JOIN shift_assignments sa ON sa.shift_id = s.id
		WHERE sa.employee_id = $1
		  AND s.company_id = $2
		  AND s.effective_from <= $3
		  AND (s.effective_to IS NULL OR s.effective_to >= $3)
		ORDER BY s.effective_from DESC
		LIMIT 1
	`

	var sh shift.Shift
	if err := scanShift(q.QueryRow(ctx, query, employeeID, companyID, date), &sh); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrNoEffectiveShift
		}
		return shift.Shift{}, fmt.Errorf("failed to get effective shift: %w", err)
	}

	return sh, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		WHERE s.id = $1
		  AND s.company_id = $2
	`

	var sh shift.Shift
	if err := scanShift(q.QueryRow(ctx, query, id, companyID), &sh); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrNoEffectiveShift
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return sh, nil
}
