package correction

import (
	"context"
	"strings"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/attendance"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/auth"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/company"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/correction"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/employee"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/notification"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/metrics"
	"github.com/developnetgeometry/unity-hrms-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type CorrectionServiceImpl struct {
	db *database.DB
	correction.CorrectionRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	settings       company.SettingsRepository
	notifications  notification.Service
	metrics        *metrics.Metrics

	// withTx and now are swapped out in tests
	withTx func(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
	now    func() time.Time
}

// NewCorrectionService wires the correction workflow service.
func NewCorrectionService(
	db *database.DB,
	correctionRepo correction.CorrectionRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo company.SettingsRepository,
	notifications notification.Service,
	m *metrics.Metrics,
) correction.CorrectionService {
	s := &CorrectionServiceImpl{
		db:                   db,
		CorrectionRepository: correctionRepo,
		attendanceRepo:       attendanceRepo,
		employeeRepo:         employeeRepo,
		settings:             settingsRepo,
		notifications:        notifications,
		metrics:              m,
		now:                  time.Now,
	}
	s.withTx = func(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

// SubmissionDeadline computes the cutoff for a record's corrections:
// the attendance date plus the company's correction window.
func SubmissionDeadline(attendanceDate time.Time, window time.Duration) time.Time {
	return attendanceDate.Add(window)
}

// Submit implements correction.CorrectionService.
func (c *CorrectionServiceImpl) Submit(ctx context.Context, req correction.SubmitRequest) (correction.SubmitResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.SubmitResponse{}, err
	}
	if len(strings.TrimSpace(req.Reason)) < correction.MinReasonLength {
		return correction.SubmitResponse{}, correction.ErrReasonTooShort
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return correction.SubmitResponse{}, err
	}

	record, err := c.attendanceRepo.GetByID(ctx, req.AttendanceRecordID, identity.CompanyID)
	if err != nil {
		return correction.SubmitResponse{}, err
	}
	if record.EmployeeID != identity.EmployeeID {
		return correction.SubmitResponse{}, attendance.ErrNotRecordOwner
	}

	settings, err := c.settings.GetSettings(ctx, identity.CompanyID)
	if err != nil {
		return correction.SubmitResponse{}, err
	}

	deadline := SubmissionDeadline(record.Date, settings.CorrectionWindow())
	// Late submissions are accepted but flagged; HR decides what to do
	// with them.
	withinDeadline := !c.now().UTC().After(deadline)

	request := correction.Request{
		AttendanceRecordID: record.ID,
		EmployeeID:         identity.EmployeeID,
		CompanyID:          identity.CompanyID,
		CorrectionType:     correction.CorrectionType(req.CorrectionType),
		RequestedClockIn:   parseTimePtr(req.RequestedClockIn),
		RequestedClockOut:  parseTimePtr(req.RequestedClockOut),
		Reason:             req.Reason,
		AttachmentURL:      req.AttachmentURL,
		SubmissionDeadline: deadline,
		IsWithinDeadline:   withinDeadline,
		Status:             correction.StatusPending,
	}

	created, err := c.CorrectionRepository.Create(ctx, request)
	if err != nil {
		return correction.SubmitResponse{}, err
	}

	c.notifyAdmins(ctx, identity.CompanyID, identity.UserID, created)

	return correction.SubmitResponse{
		Correction:     correction.MapRequestToResponse(created),
		Deadline:       deadline.Format(time.RFC3339),
		WithinDeadline: withinDeadline,
	}, nil
}

// Review implements correction.CorrectionService.
func (c *CorrectionServiceImpl) Review(ctx context.Context, req correction.ReviewRequest) (correction.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.ReviewResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return correction.ReviewResponse{}, err
	}
	if !identity.Role.IsAdmin() {
		return correction.ReviewResponse{}, correction.ErrNotAuthorized
	}

	action := correction.ReviewAction(req.Action)
	status := correction.StatusRejected
	if action == correction.ActionApprove {
		status = correction.StatusApproved
	}

	var resolved correction.Request
	err = c.withTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		resolved, err = c.CorrectionRepository.Resolve(txCtx, tx, req.CorrectionID, status, identity.UserID, req.ReviewerNotes, identity.CompanyID)
		if err != nil {
			return err
		}

		if status != correction.StatusApproved {
			return nil
		}

		// Approval mutates only the fields the correction asked for and
		// locks the record, all in the same transaction as the decision.
		clockIn, clockOut := requestedFields(resolved)
		return c.attendanceRepo.ApplyCorrection(txCtx, resolved.AttendanceRecordID, resolved.ID, clockIn, clockOut, identity.CompanyID)
	})
	if err != nil {
		return correction.ReviewResponse{}, err
	}

	c.metrics.CorrectionReviews.WithLabelValues(string(action)).Inc()
	c.notifyEmployee(ctx, identity, resolved, status)

	return correction.ReviewResponse{
		Correction: correction.MapRequestToResponse(resolved),
		Action:     action,
	}, nil
}

// List implements correction.CorrectionService.
func (c *CorrectionServiceImpl) List(ctx context.Context, filter correction.ListFilter) (correction.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return correction.ListResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return correction.ListResponse{}, err
	}

	// Admins see the whole queue, employees only their own submissions.
	var employeeID *string
	if !identity.Role.IsAdmin() {
		employeeID = &identity.EmployeeID
	}

	requests, total, err := c.CorrectionRepository.List(ctx, filter, employeeID, identity.CompanyID)
	if err != nil {
		return correction.ListResponse{}, err
	}

	responses := make([]correction.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, correction.MapRequestToResponse(req))
	}

	return correction.ListResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Corrections: responses,
	}, nil
}

// requestedFields returns the clock values an approved correction applies,
// limited by its correction type.
func requestedFields(req correction.Request) (clockIn, clockOut *time.Time) {
	switch req.CorrectionType {
	case correction.TypeClockIn:
		return req.RequestedClockIn, nil
	case correction.TypeClockOut:
		return nil, req.RequestedClockOut
	default:
		return req.RequestedClockIn, req.RequestedClockOut
	}
}

func (c *CorrectionServiceImpl) notifyAdmins(ctx context.Context, companyID, senderID string, created correction.Request) {
	if c.notifications == nil {
		return
	}

	adminIDs, err := c.employeeRepo.GetAdminUserIDs(ctx, companyID)
	if err != nil {
		return
	}
	for _, adminID := range adminIDs {
		_ = c.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
			CompanyID:   companyID,
			RecipientID: adminID,
			SenderID:    &senderID,
			Type:        notification.TypeCorrectionSubmitted,
			Title:       "Correction request submitted",
			Message:     "A new attendance correction request is waiting for review.",
			Data:        map[string]interface{}{"correction_id": created.ID},
		})
	}
}

func (c *CorrectionServiceImpl) notifyEmployee(ctx context.Context, identity auth.Identity, resolved correction.Request, status correction.Status) {
	if c.notifications == nil {
		return
	}

	notifType := notification.TypeCorrectionRejected
	title := "Correction request rejected"
	message := "Your attendance correction request has been rejected."
	if status == correction.StatusApproved {
		notifType = notification.TypeCorrectionApproved
		title = "Correction request approved"
		message = "Your attendance correction request has been approved and applied."
	}

	// Notifications are addressed to user accounts, not employee rows.
	emp, err := c.employeeRepo.GetByID(ctx, resolved.EmployeeID, identity.CompanyID)
	if err != nil || emp.UserID == nil {
		return
	}

	_ = c.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   identity.CompanyID,
		RecipientID: *emp.UserID,
		SenderID:    &identity.UserID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data:        map[string]interface{}{"correction_id": resolved.ID},
	})
}

func parseTimePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
