package overtime

import (
	"context"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/attendance"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/auth"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/employee"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/notification"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/overtime"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/site"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/user"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/geo"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/metrics"
)

type OvertimeServiceImpl struct {
	overtime.OvertimeRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	siteRepo       site.SiteRepository
	notifications  notification.Service
	metrics        *metrics.Metrics

	now func() time.Time
}

// NewOvertimeService wires the overtime service with its repositories.
func NewOvertimeService(
	overtimeRepo overtime.OvertimeRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	siteRepo site.SiteRepository,
	notifications notification.Service,
	m *metrics.Metrics,
) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		OvertimeRepository: overtimeRepo,
		attendanceRepo:     attendanceRepo,
		employeeRepo:       employeeRepo,
		siteRepo:           siteRepo,
		notifications:      notifications,
		metrics:            m,
		now:                time.Now,
	}
}

// OTClockIn implements overtime.OvertimeService.
func (o *OvertimeServiceImpl) OTClockIn(ctx context.Context, req overtime.OTClockInRequest) (overtime.OTClockInResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OTClockInResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return overtime.OTClockInResponse{}, err
	}

	record, err := o.attendanceRepo.GetByID(ctx, req.AttendanceRecordID, identity.CompanyID)
	if err != nil {
		return overtime.OTClockInResponse{}, err
	}
	if record.EmployeeID != identity.EmployeeID {
		return overtime.OTClockInResponse{}, attendance.ErrNotRecordOwner
	}
	if !record.HasClockedOut() {
		return overtime.OTClockInResponse{}, overtime.ErrNoClockOutYet
	}

	active, err := o.OvertimeRepository.GetActiveByEmployee(ctx, identity.EmployeeID, identity.CompanyID)
	if err != nil {
		return overtime.OTClockInResponse{}, err
	}
	if active != nil {
		return overtime.OTClockInResponse{}, overtime.ErrActiveSessionExists
	}

	workSite, err := o.siteRepo.GetByID(ctx, req.SiteID, identity.CompanyID)
	if err != nil {
		return overtime.OTClockInResponse{}, err
	}
	if !workSite.IsActive {
		return overtime.OTClockInResponse{}, site.ErrSiteInactive
	}
	if !geo.WithinRadius(req.Latitude, req.Longitude, workSite.Latitude, workSite.Longitude, workSite.RadiusMeters) {
		o.metrics.GeofenceFailures.Inc()
		return overtime.OTClockInResponse{}, overtime.ErrOutsideOTRange
	}

	session := overtime.Session{
		EmployeeID:         identity.EmployeeID,
		CompanyID:          identity.CompanyID,
		AttendanceRecordID: record.ID,
		SiteID:             workSite.ID,
		OTInTime:           o.now().UTC(),
		OTInLatitude:       req.Latitude,
		OTInLongitude:      req.Longitude,
		Status:             overtime.SessionStatusActive,
	}

	created, err := o.OvertimeRepository.Create(ctx, session)
	if err != nil {
		return overtime.OTClockInResponse{}, err
	}

	o.metrics.ClockEvents.WithLabelValues("ot_in").Inc()

	return overtime.OTClockInResponse{OTSession: overtime.MapSessionToResponse(created)}, nil
}

// OTClockOut implements overtime.OvertimeService.
func (o *OvertimeServiceImpl) OTClockOut(ctx context.Context, req overtime.OTClockOutRequest) (overtime.OTClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OTClockOutResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return overtime.OTClockOutResponse{}, err
	}

	session, err := o.OvertimeRepository.GetByID(ctx, req.OTSessionID, identity.CompanyID)
	if err != nil {
		return overtime.OTClockOutResponse{}, err
	}
	if session.EmployeeID != identity.EmployeeID {
		return overtime.OTClockOutResponse{}, overtime.ErrSessionNotFound
	}
	if !session.IsActive() {
		return overtime.OTClockOutResponse{}, overtime.ErrSessionNotActive
	}

	// OT must end at the site it started at, regardless of where the
	// caller claims to be.
	if req.SiteID != "" && req.SiteID != session.SiteID {
		return overtime.OTClockOutResponse{}, overtime.ErrSiteMismatch
	}
	workSite, err := o.siteRepo.GetByID(ctx, session.SiteID, identity.CompanyID)
	if err != nil {
		return overtime.OTClockOutResponse{}, err
	}
	if !geo.WithinRadius(req.Latitude, req.Longitude, workSite.Latitude, workSite.Longitude, workSite.RadiusMeters) {
		o.metrics.GeofenceFailures.Inc()
		return overtime.OTClockOutResponse{}, overtime.ErrOutsideOTRange
	}

	otOut := o.now().UTC()
	total := RoundOTHours(otOut.Sub(session.OTInTime).Hours())

	session.OTOutTime = &otOut
	session.OTOutLatitude = &req.Latitude
	session.OTOutLongitude = &req.Longitude
	session.TotalOTHours = &total

	if err := o.OvertimeRepository.Complete(ctx, session); err != nil {
		return overtime.OTClockOutResponse{}, err
	}
	session.Status = overtime.SessionStatusCompleted

	o.metrics.ClockEvents.WithLabelValues("ot_out").Inc()

	return overtime.OTClockOutResponse{
		OTSession:  overtime.MapSessionToResponse(session),
		TotalHours: total,
	}, nil
}

// ApproveSession implements overtime.OvertimeService.
func (o *OvertimeServiceImpl) ApproveSession(ctx context.Context, req overtime.ApproveSessionRequest) (overtime.SessionResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return overtime.SessionResponse{}, err
	}
	if !identity.Role.IsAdmin() {
		return overtime.SessionResponse{}, user.ErrAdminAccessRequired
	}

	session, err := o.OvertimeRepository.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		return overtime.SessionResponse{}, err
	}
	if session.Status != overtime.SessionStatusCompleted {
		return overtime.SessionResponse{}, overtime.ErrNotCompleted
	}
	if session.IsApproved {
		return overtime.SessionResponse{}, overtime.ErrAlreadyApproved
	}

	if err := o.OvertimeRepository.Approve(ctx, session.ID, identity.UserID, identity.CompanyID); err != nil {
		return overtime.SessionResponse{}, err
	}

	approvedAt := o.now().UTC()
	session.IsApproved = true
	session.ApprovedBy = &identity.UserID
	session.ApprovedAt = &approvedAt

	// Notifications are addressed to user accounts, not employee rows.
	if emp, err := o.employeeRepo.GetByID(ctx, session.EmployeeID, identity.CompanyID); err == nil && emp.UserID != nil && o.notifications != nil {
		_ = o.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
			CompanyID:   identity.CompanyID,
			RecipientID: *emp.UserID,
			SenderID:    &identity.UserID,
			Type:        notification.TypeOvertimeApproved,
			Title:       "Overtime approved",
			Message:     "Your overtime session has been approved for payroll.",
			Data:        map[string]interface{}{"ot_session_id": session.ID},
		})
	}

	return overtime.MapSessionToResponse(session), nil
}

// RoundOTHours rounds overtime hours to two decimal places.
func RoundOTHours(hours float64) float64 {
	if hours < 0 {
		return 0
	}
	return float64(int(hours*100+0.5)) / 100
}
