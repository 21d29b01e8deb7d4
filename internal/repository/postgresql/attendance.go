package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/attendance"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

type attendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a PostgreSQL-backed attendance repository.
func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.date, a.site_id, a.shift_id,
	a.clock_in_time, a.clock_in_latitude, a.clock_in_longitude,
	a.clock_out_time, a.clock_out_latitude, a.clock_out_longitude,
	a.status, a.hours_worked, a.overtime_hours,
	a.locked_for_payroll, a.is_provisional, a.correction_id,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, rec *attendance.Record) error {
	return row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date, &rec.SiteID, &rec.ShiftID,
		&rec.ClockInTime, &rec.ClockInLatitude, &rec.ClockInLongitude,
		&rec.ClockOutTime, &rec.ClockOutLatitude, &rec.ClockOutLongitude,
		&rec.Status, &rec.HoursWorked, &rec.OvertimeHours,
		&rec.LockedForPayroll, &rec.IsProvisional, &rec.CorrectionID,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, company_id, date, site_id, shift_id,
			clock_in_time, clock_in_latitude, clock_in_longitude,
			status, is_provisional
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.CompanyID,
		record.Date,
		record.SiteID,
		record.ShiftID,
		record.ClockInTime,
		record.ClockInLatitude,
		record.ClockInLongitude,
		record.Status,
		record.IsProvisional,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			// The (employee_id, date) constraint caught a concurrent
			// double clock-in that passed the application pre-check.
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.id = $1
		  AND a.company_id = $2
	`

	var rec attendance.Record
	if err := scanAttendance(q.QueryRow(ctx, query, id, companyID), &rec); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.date = $2
		  AND a.company_id = $3
		LIMIT 1
	`

	var rec attendance.Record
	if err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, companyID), &rec); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET clock_out_time = $1,
			clock_out_latitude = $2,
			clock_out_longitude = $3,
			status = $4,
			hours_worked = $5,
			overtime_hours = $6,
			is_provisional = $7,
			updated_at = NOW()
		WHERE id = $8
		  AND company_id = $9
	`

	tag, err := q.Exec(ctx, query,
		record.ClockOutTime,
		record.ClockOutLatitude,
		record.ClockOutLongitude,
		record.Status,
		record.HoursWorked,
		record.OvertimeHours,
		record.IsProvisional,
		record.ID,
		record.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// ApplyCorrection implements attendance.AttendanceRepository.
func (r *attendanceRepository) ApplyCorrection(ctx context.Context, recordID string, correctionID string, clockIn, clockOut *time.Time, companyID string) error {
	q := GetQuerier(ctx, r.db)

	// COALESCE keeps fields the correction did not touch.
	query := `
		UPDATE attendance_records
		SET clock_in_time = COALESCE($1, clock_in_time),
			clock_out_time = COALESCE($2, clock_out_time),
			hours_worked = CASE
				WHEN COALESCE($1, clock_in_time) IS NOT NULL AND COALESCE($2, clock_out_time) IS NOT NULL
				THEN EXTRACT(EPOCH FROM (COALESCE($2, clock_out_time) - COALESCE($1, clock_in_time))) / 3600.0
				ELSE hours_worked
			END,
			correction_id = $3,
			locked_for_payroll = TRUE,
			is_provisional = FALSE,
			updated_at = NOW()
		WHERE id = $4
		  AND company_id = $5
	`

	tag, err := q.Exec(ctx, query, clockIn, clockOut, correctionID, recordID, companyID)
	if err != nil {
		return fmt.Errorf("failed to apply correction to attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// ListByCompanyAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.company_id = $1
		  AND a.date = $2
		ORDER BY a.created_at
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := scanAttendance(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}
