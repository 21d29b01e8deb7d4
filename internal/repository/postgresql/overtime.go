package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/overtime"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type overtimeRepository struct {
	db *database.DB
}

// NewOvertimeRepository creates a PostgreSQL-backed overtime repository.
func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepository{db: db}
}

const overtimeColumns = `
	id, employee_id, company_id, attendance_record_id, site_id,
	ot_in_time, ot_in_latitude, ot_in_longitude,
	ot_out_time, ot_out_latitude, ot_out_longitude,
	status, total_ot_hours, is_approved, approved_by, approved_at,
	created_at, updated_at`

func scanOvertime(row pgx.Row, s *overtime.Session) error {
	return row.Scan(
		&s.ID, &s.EmployeeID, &s.CompanyID, &s.AttendanceRecordID, &s.SiteID,
		&s.OTInTime, &s.OTInLatitude, &s.OTInLongitude,
		&s.OTOutTime, &s.OTOutLatitude, &s.OTOutLongitude,
		&s.Status, &s.TotalOTHours, &s.IsApproved, &s.ApprovedBy, &s.ApprovedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
}

// Create implements overtime.OvertimeRepository.
func (r *overtimeRepository) Create(ctx context.Context, session overtime.Session) (overtime.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_sessions (
			employee_id, company_id, attendance_record_id, site_id,
			ot_in_time, ot_in_latitude, ot_in_longitude, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.EmployeeID,
		session.CompanyID,
		session.AttendanceRecordID,
		session.SiteID,
		session.OTInTime,
		session.OTInLatitude,
		session.OTInLongitude,
		session.Status,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			// Partial unique index on (employee_id) WHERE status = 'active'
			// guarantees at most one open session per employee.
			return overtime.Session{}, overtime.ErrActiveSessionExists
		}
		return overtime.Session{}, fmt.Errorf("failed to create overtime session: %w", err)
	}

	return session, nil
}

// GetByID implements overtime.OvertimeRepository.
func (r *overtimeRepository) GetByID(ctx context.Context, id string, companyID string) (overtime.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_sessions
		WHERE id = $1
		  AND company_id = $2
	`

	var session overtime.Session
	if err := scanOvertime(q.QueryRow(ctx, query, id, companyID), &session); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Session{}, overtime.ErrSessionNotFound
		}
		return overtime.Session{}, fmt.Errorf("failed to get overtime session: %w", err)
	}

	return session, nil
}

// GetActiveByEmployee implements overtime.OvertimeRepository.
func (r *overtimeRepository) GetActiveByEmployee(ctx context.Context, employeeID string, companyID string) (*overtime.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_sessions
		WHERE employee_id = $1
		  AND company_id = $2
		  AND status = 'active'
		LIMIT 1
	`

	var session overtime.Session
	if err := scanOvertime(q.QueryRow(ctx, query, employeeID, companyID), &session); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active overtime session: %w", err)
	}

	return &session, nil
}

// Complete implements overtime.OvertimeRepository.
func (r *overtimeRepository) Complete(ctx context.Context, session overtime.Session) error {
	q := GetQuerier(ctx, r.db)

	// Conditional on status so two concurrent ot-outs cannot both close
	// the session.
	query := `
		UPDATE overtime_sessions
		SET ot_out_time = $1,
			ot_out_latitude = $2,
			ot_out_longitude = $3,
			total_ot_hours = $4,
			status = 'completed',
			updated_at = NOW()
		WHERE id = $5
		  AND company_id = $6
		  AND status = 'active'
	`

	tag, err := q.Exec(ctx, query,
		session.OTOutTime,
		session.OTOutLatitude,
		session.OTOutLongitude,
		session.TotalOTHours,
		session.ID,
		session.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete overtime session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrSessionNotActive
	}

	return nil
}

// Approve implements overtime.OvertimeRepository.
func (r *overtimeRepository) Approve(ctx context.Context, id string, reviewerID string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_sessions
		SET is_approved = TRUE,
			approved_by = $1,
			approved_at = NOW(),
			updated_at = NOW()
		WHERE id = $2
		  AND company_id = $3
		  AND status = 'completed'
		  AND is_approved = FALSE
	`

	tag, err := q.Exec(ctx, query, reviewerID, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to approve overtime session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrAlreadyApproved
	}

	return nil
}

// ListStaleActive implements overtime.OvertimeRepository.
func (r *overtimeRepository) ListStaleActive(ctx context.Context, olderThanHours int) ([]overtime.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_sessions
		WHERE status = 'active'
		  AND ot_in_time < NOW() - make_interval(hours => $1)
		ORDER BY ot_in_time
	`

	rows, err := q.Query(ctx, query, olderThanHours)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale overtime sessions: %w", err)
	}
	defer rows.Close()

	var sessions []overtime.Session
	for rows.Next() {
		var session overtime.Session
		if err := scanOvertime(rows, &session); err != nil {
			return nil, fmt.Errorf("failed to scan overtime session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overtime sessions: %w", err)
	}

	return sessions, nil
}
