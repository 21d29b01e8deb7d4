package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/correction"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type correctionRepository struct {
	db *database.DB
}

// NewCorrectionRepository creates a PostgreSQL-backed correction repository.
func NewCorrectionRepository(db *database.DB) correction.CorrectionRepository {
	return &correctionRepository{db: db}
}

const correctionColumns = `
	c.id, c.attendance_record_id, c.employee_id, c.company_id,
	c.correction_type, c.requested_clock_in, c.requested_clock_out,
	c.reason, c.attachment_url, c.submission_deadline, c.is_within_deadline,
	c.status, c.reviewed_by, c.reviewer_notes, c.reviewed_at,
	c.created_at, c.updated_at`

func scanCorrection(row pgx.Row, req *correction.Request) error {
	return row.Scan(
		&req.ID, &req.AttendanceRecordID, &req.EmployeeID, &req.CompanyID,
		&req.CorrectionType, &req.RequestedClockIn, &req.RequestedClockOut,
		&req.Reason, &req.AttachmentURL, &req.SubmissionDeadline, &req.IsWithinDeadline,
		&req.Status, &req.ReviewedBy, &req.ReviewerNotes, &req.ReviewedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)
}

// Create implements correction.CorrectionRepository.
func (r *correctionRepository) Create(ctx context.Context, request correction.Request) (correction.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO correction_requests (
			attendance_record_id, employee_id, company_id, correction_type,
			requested_clock_in, requested_clock_out, reason, attachment_url,
			submission_deadline, is_within_deadline, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.AttendanceRecordID,
		request.EmployeeID,
		request.CompanyID,
		request.CorrectionType,
		request.RequestedClockIn,
		request.RequestedClockOut,
		request.Reason,
		request.AttachmentURL,
		request.SubmissionDeadline,
		request.IsWithinDeadline,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return correction.Request{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	return request, nil
}

// GetByID implements correction.CorrectionRepository.
func (r *correctionRepository) GetByID(ctx context.Context, id string, companyID string) (correction.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + correctionColumns + `,
			   e.full_name, a.date
		FROM correction_requests c
		JOIN employees e ON e.id = c.employee_id
		JOIN attendance_records a ON a.id = c.attendance_record_id
		WHERE c.id = $1
		  AND c.company_id = $2
	`

	var req correction.Request
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&req.ID, &req.AttendanceRecordID, &req.EmployeeID, &req.CompanyID,
		&req.CorrectionType, &req.RequestedClockIn, &req.RequestedClockOut,
		&req.Reason, &req.AttachmentURL, &req.SubmissionDeadline, &req.IsWithinDeadline,
		&req.Status, &req.ReviewedBy, &req.ReviewerNotes, &req.ReviewedAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.AttendanceDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.Request{}, correction.ErrCorrectionNotFound
		}
		return correction.Request{}, fmt.Errorf("failed to get correction request: %w", err)
	}

	return req, nil
}

// Resolve implements correction.CorrectionRepository.
func (r *correctionRepository) Resolve(ctx context.Context, tx pgx.Tx, id string, status correction.Status, reviewerID string, notes *string, companyID string) (correction.Request, error) {
	// The WHERE status = 'pending' guard makes concurrent reviews race on
	// the row: exactly one UPDATE matches, the loser gets no row back.
	query := `
		UPDATE correction_requests
		SET status = $1,
			reviewed_by = $2,
			reviewer_notes = $3,
			reviewed_at = NOW(),
			updated_at = NOW()
		WHERE id = $4
		  AND company_id = $5
		  AND status = 'pending'
		RETURNING id, attendance_record_id, employee_id, company_id,
			correction_type, requested_clock_in, requested_clock_out,
			reason, attachment_url, submission_deadline, is_within_deadline,
			status, reviewed_by, reviewer_notes, reviewed_at,
			created_at, updated_at
	`

	var req correction.Request
	err := scanCorrection(tx.QueryRow(ctx, query, status, reviewerID, notes, id, companyID), &req)
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return correction.Request{}, fmt.Errorf("failed to resolve correction request: %w", err)
	}

	// No pending row matched. Distinguish "already reviewed" from "not ours".
	var current correction.Status
	err = tx.QueryRow(ctx,
		`SELECT status FROM correction_requests WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.Request{}, correction.ErrCorrectionNotFound
		}
		return correction.Request{}, fmt.Errorf("failed to check correction status: %w", err)
	}

	return correction.Request{}, &correction.AlreadyReviewedError{CurrentStatus: current}
}

// List implements correction.CorrectionRepository.
func (r *correctionRepository) List(ctx context.Context, filter correction.ListFilter, employeeID *string, companyID string) ([]correction.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"c.company_id = $1"}
	args := []any{companyID}

	if employeeID != nil {
		args = append(args, *employeeID)
		conditions = append(conditions, "c.employee_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, "c.status = $"+strconv.Itoa(len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM correction_requests c WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count correction requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := `
		SELECT ` + correctionColumns + `,
			   e.full_name, a.date
		FROM correction_requests c
		JOIN employees e ON e.id = c.employee_id
		JOIN attendance_records a ON a.id = c.attendance_record_id
		WHERE ` + where + `
		ORDER BY c.created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list correction requests: %w", err)
	}
	defer rows.Close()

	var requests []correction.Request
	for rows.Next() {
		var req correction.Request
		err := rows.Scan(
			&req.ID, &req.AttendanceRecordID, &req.EmployeeID, &req.CompanyID,
			&req.CorrectionType, &req.RequestedClockIn, &req.RequestedClockOut,
			&req.Reason, &req.AttachmentURL, &req.SubmissionDeadline, &req.IsWithinDeadline,
			&req.Status, &req.ReviewedBy, &req.ReviewerNotes, &req.ReviewedAt,
			&req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName, &req.AttendanceDate,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan correction request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate correction requests: %w", err)
	}

	return requests, total, nil
}
