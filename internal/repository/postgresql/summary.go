package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/summary"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
)

type summaryRepository struct {
	db *database.DB
}

// NewSummaryRepository creates a PostgreSQL-backed summary repository.
func NewSummaryRepository(db *database.DB) summary.SummaryRepository {
	return &summaryRepository{db: db}
}

// GetDayStats implements summary.SummaryRepository.
func (r *summaryRepository) GetDayStats(ctx context.Context, companyID string, date time.Time) (summary.DayStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE a.status IN ('on_time', 'late', 'half_day')) AS present_count,
			COUNT(*) FILTER (WHERE a.status = 'late') AS late_count,
			COUNT(*) FILTER (WHERE a.status = 'absent') AS absent_count,
			COALESCE(AVG(a.hours_worked) FILTER (WHERE a.hours_worked IS NOT NULL), 0) AS average_hours,
			(
				SELECT COUNT(*)
				FROM employees e
				WHERE e.company_id = $1
				  AND e.employment_status = 'active'
				  AND e.deleted_at IS NULL
			) AS total_employees
		FROM attendance_records a
		WHERE a.company_id = $1
		  AND a.date = $2
	`

	var stats summary.DayStats
	err := q.QueryRow(ctx, query, companyID, date).Scan(
		&stats.PresentCount,
		&stats.LateCount,
		&stats.AbsentCount,
		&stats.AverageHours,
		&stats.TotalEmployees,
	)
	if err != nil {
		return summary.DayStats{}, fmt.Errorf("failed to get day stats: %w", err)
	}

	return stats, nil
}
