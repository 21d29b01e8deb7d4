package overtime

import (
	"context"
	"testing"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/attendance"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/employee"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/notification"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/overtime"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/site"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/user"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/jwt"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/metrics"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmployeeID = "emp-1"
	testCompanyID  = "comp-1"
	testUserID     = "user-1"
	testSiteID     = "site-1"

	siteLat = 3.1579
	siteLon = 101.7123
)

func authedContext(t *testing.T, role user.Role) context.Context {
	t.Helper()
	svc := jwt.NewJWTService("test-secret-key", "1h")
	tokenStr, _, err := svc.GenerateAccessToken(testUserID, testEmployeeID, testCompanyID, role)
	require.NoError(t, err)
	token, err := svc.JWTAuth().Decode(tokenStr)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeOvertimeRepo struct {
	byID      map[string]overtime.Session
	active    *overtime.Session
	created   []overtime.Session
	completed []overtime.Session
	approved  []string
}

func newFakeOvertimeRepo() *fakeOvertimeRepo {
	return &fakeOvertimeRepo{byID: map[string]overtime.Session{}}
}

func (f *fakeOvertimeRepo) Create(ctx context.Context, session overtime.Session) (overtime.Session, error) {
	session.ID = "ot-created"
	f.created = append(f.created, session)
	return session, nil
}

func (f *fakeOvertimeRepo) GetByID(ctx context.Context, id string, companyID string) (overtime.Session, error) {
	s, ok := f.byID[id]
	if !ok || s.CompanyID != companyID {
		return overtime.Session{}, overtime.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeOvertimeRepo) GetActiveByEmployee(ctx context.Context, employeeID string, companyID string) (*overtime.Session, error) {
	return f.active, nil
}

func (f *fakeOvertimeRepo) Complete(ctx context.Context, session overtime.Session) error {
	f.completed = append(f.completed, session)
	return nil
}

func (f *fakeOvertimeRepo) Approve(ctx context.Context, id string, reviewerID string, companyID string) error {
	f.approved = append(f.approved, id)
	return nil
}

func (f *fakeOvertimeRepo) ListStaleActive(ctx context.Context, olderThanHours int) ([]overtime.Session, error) {
	return nil, nil
}

type fakeAttendanceRepo struct {
	record attendance.Record
	err    error
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	if f.err != nil {
		return attendance.Record{}, f.err
	}
	return f.record, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.Record) error {
	return nil
}

func (f *fakeAttendanceRepo) ApplyCorrection(ctx context.Context, recordID string, correctionID string, clockIn, clockOut *time.Time, companyID string) error {
	return nil
}

func (f *fakeAttendanceRepo) ListByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]attendance.Record, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	userID string
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	userID := f.userID
	return employee.Employee{ID: id, CompanyID: companyID, UserID: &userID}, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string, companyID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetAdminUserIDs(ctx context.Context, companyID string) ([]string, error) {
	return nil, nil
}

type fakeSiteRepo struct {
	site site.Site
}

func (f *fakeSiteRepo) GetByID(ctx context.Context, id string, companyID string) (site.Site, error) {
	return f.site, nil
}

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) Shutdown() {}

type fixture struct {
	svc      *OvertimeServiceImpl
	otRepo   *fakeOvertimeRepo
	attRepo  *fakeAttendanceRepo
	notifier *fakeNotifier
}

func newFixture(now time.Time) *fixture {
	otRepo := newFakeOvertimeRepo()
	out := now.Add(-30 * time.Minute)
	in := now.Add(-9 * time.Hour)
	attRepo := &fakeAttendanceRepo{record: attendance.Record{
		ID: "rec-1", EmployeeID: testEmployeeID, CompanyID: testCompanyID,
		ClockInTime: &in, ClockOutTime: &out,
	}}
	siteRepo := &fakeSiteRepo{site: site.Site{
		ID: testSiteID, CompanyID: testCompanyID,
		Latitude: siteLat, Longitude: siteLon, RadiusMeters: 150, IsActive: true,
	}}
	notifier := &fakeNotifier{}
	empRepo := &fakeEmployeeRepo{userID: testUserID}

	svc := NewOvertimeService(otRepo, attRepo, empRepo, siteRepo, notifier, metrics.New()).(*OvertimeServiceImpl)
	svc.now = func() time.Time { return now }

	return &fixture{svc: svc, otRepo: otRepo, attRepo: attRepo, notifier: notifier}
}

func TestOTClockIn(t *testing.T) {
	ctx := authedContext(t, user.RoleEmployee)
	now := time.Date(2025, 3, 3, 10, 30, 0, 0, time.UTC)

	t.Run("success opens an active session", func(t *testing.T) {
		f := newFixture(now)

		resp, err := f.svc.OTClockIn(ctx, overtime.OTClockInRequest{
			SiteID: testSiteID, AttendanceRecordID: "rec-1",
			Latitude: siteLat, Longitude: siteLon,
		})
		require.NoError(t, err)

		require.Len(t, f.otRepo.created, 1)
		created := f.otRepo.created[0]
		assert.Equal(t, overtime.SessionStatusActive, created.Status)
		assert.Equal(t, "rec-1", created.AttendanceRecordID)
		assert.Equal(t, now, created.OTInTime)
		assert.Equal(t, overtime.SessionStatusActive, resp.OTSession.Status)
	})

	t.Run("requires regular clock-out first", func(t *testing.T) {
		f := newFixture(now)
		f.attRepo.record.ClockOutTime = nil

		_, err := f.svc.OTClockIn(ctx, overtime.OTClockInRequest{
			SiteID: testSiteID, AttendanceRecordID: "rec-1",
			Latitude: siteLat, Longitude: siteLon,
		})
		assert.ErrorIs(t, err, overtime.ErrNoClockOutYet)
	})

	t.Run("rejects a second active session", func(t *testing.T) {
		f := newFixture(now)
		f.otRepo.active = &overtime.Session{ID: "ot-0", Status: overtime.SessionStatusActive}

		_, err := f.svc.OTClockIn(ctx, overtime.OTClockInRequest{
			SiteID: testSiteID, AttendanceRecordID: "rec-1",
			Latitude: siteLat, Longitude: siteLon,
		})
		assert.ErrorIs(t, err, overtime.ErrActiveSessionExists)
	})

	t.Run("rejects someone else's record", func(t *testing.T) {
		f := newFixture(now)
		f.attRepo.record.EmployeeID = "emp-other"

		_, err := f.svc.OTClockIn(ctx, overtime.OTClockInRequest{
			SiteID: testSiteID, AttendanceRecordID: "rec-1",
			Latitude: siteLat, Longitude: siteLon,
		})
		assert.ErrorIs(t, err, attendance.ErrNotRecordOwner)
	})

	t.Run("rejects out-of-range location", func(t *testing.T) {
		f := newFixture(now)

		_, err := f.svc.OTClockIn(ctx, overtime.OTClockInRequest{
			SiteID: testSiteID, AttendanceRecordID: "rec-1",
			Latitude: 5.4141, Longitude: 100.3288,
		})
		assert.ErrorIs(t, err, overtime.ErrOutsideOTRange)
	})
}

func TestOTClockOut(t *testing.T) {
	ctx := authedContext(t, user.RoleEmployee)
	now := time.Date(2025, 3, 3, 13, 0, 0, 0, time.UTC)

	activeSession := func() overtime.Session {
		return overtime.Session{
			ID: "ot-1", EmployeeID: testEmployeeID, CompanyID: testCompanyID,
			AttendanceRecordID: "rec-1", SiteID: testSiteID,
			OTInTime: now.Add(-150 * time.Minute), Status: overtime.SessionStatusActive,
		}
	}

	t.Run("computes total hours and completes", func(t *testing.T) {
		f := newFixture(now)
		f.otRepo.byID["ot-1"] = activeSession()

		resp, err := f.svc.OTClockOut(ctx, overtime.OTClockOutRequest{
			OTSessionID: "ot-1", Latitude: siteLat, Longitude: siteLon,
		})
		require.NoError(t, err)
		assert.InDelta(t, 2.5, resp.TotalHours, 0.01)
		assert.Equal(t, overtime.SessionStatusCompleted, resp.OTSession.Status)
		require.Len(t, f.otRepo.completed, 1)
		require.NotNil(t, f.otRepo.completed[0].OTOutTime)
		assert.Equal(t, now, *f.otRepo.completed[0].OTOutTime)
	})

	t.Run("rejects a completed session", func(t *testing.T) {
		f := newFixture(now)
		s := activeSession()
		s.Status = overtime.SessionStatusCompleted
		f.otRepo.byID["ot-1"] = s

		_, err := f.svc.OTClockOut(ctx, overtime.OTClockOutRequest{
			OTSessionID: "ot-1", Latitude: siteLat, Longitude: siteLon,
		})
		assert.ErrorIs(t, err, overtime.ErrSessionNotActive)
	})

	t.Run("rejects a different site than ot-in", func(t *testing.T) {
		f := newFixture(now)
		f.otRepo.byID["ot-1"] = activeSession()

		_, err := f.svc.OTClockOut(ctx, overtime.OTClockOutRequest{
			OTSessionID: "ot-1", SiteID: "site-other", Latitude: siteLat, Longitude: siteLon,
		})
		assert.ErrorIs(t, err, overtime.ErrSiteMismatch)
	})

	t.Run("must be inside the ot-in site radius", func(t *testing.T) {
		f := newFixture(now)
		f.otRepo.byID["ot-1"] = activeSession()

		_, err := f.svc.OTClockOut(ctx, overtime.OTClockOutRequest{
			OTSessionID: "ot-1", Latitude: 5.4141, Longitude: 100.3288,
		})
		assert.ErrorIs(t, err, overtime.ErrOutsideOTRange)
	})

	t.Run("hides other employees' sessions", func(t *testing.T) {
		f := newFixture(now)
		s := activeSession()
		s.EmployeeID = "emp-other"
		f.otRepo.byID["ot-1"] = s

		_, err := f.svc.OTClockOut(ctx, overtime.OTClockOutRequest{
			OTSessionID: "ot-1", Latitude: siteLat, Longitude: siteLon,
		})
		assert.ErrorIs(t, err, overtime.ErrSessionNotFound)
	})
}

func TestApproveSession(t *testing.T) {
	now := time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC)

	completedSession := func() overtime.Session {
		total := 2.5
		out := now.Add(-time.Hour)
		return overtime.Session{
			ID: "ot-1", EmployeeID: testEmployeeID, CompanyID: testCompanyID,
			SiteID: testSiteID, OTInTime: now.Add(-4 * time.Hour), OTOutTime: &out,
			Status: overtime.SessionStatusCompleted, TotalOTHours: &total,
		}
	}

	t.Run("admin approval notifies the employee", func(t *testing.T) {
		f := newFixture(now)
		f.otRepo.byID["ot-1"] = completedSession()

		resp, err := f.svc.ApproveSession(authedContext(t, user.RoleCompanyAdmin), overtime.ApproveSessionRequest{ID: "ot-1"})
		require.NoError(t, err)
		assert.True(t, resp.IsApproved)
		assert.Equal(t, []string{"ot-1"}, f.otRepo.approved)
		require.Len(t, f.notifier.queued, 1)
		assert.Equal(t, notification.TypeOvertimeApproved, f.notifier.queued[0].Type)
		assert.Equal(t, testUserID, f.notifier.queued[0].RecipientID)
	})

	t.Run("regular employees cannot approve", func(t *testing.T) {
		f := newFixture(now)
		f.otRepo.byID["ot-1"] = completedSession()

		_, err := f.svc.ApproveSession(authedContext(t, user.RoleEmployee), overtime.ApproveSessionRequest{ID: "ot-1"})
		assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
	})

	t.Run("active sessions cannot be approved", func(t *testing.T) {
		f := newFixture(now)
		s := completedSession()
		s.Status = overtime.SessionStatusActive
		f.otRepo.byID["ot-1"] = s

		_, err := f.svc.ApproveSession(authedContext(t, user.RoleCompanyAdmin), overtime.ApproveSessionRequest{ID: "ot-1"})
		assert.ErrorIs(t, err, overtime.ErrNotCompleted)
	})

	t.Run("double approval is rejected", func(t *testing.T) {
		f := newFixture(now)
		s := completedSession()
		s.IsApproved = true
		f.otRepo.byID["ot-1"] = s

		_, err := f.svc.ApproveSession(authedContext(t, user.RoleCompanyAdmin), overtime.ApproveSessionRequest{ID: "ot-1"})
		assert.ErrorIs(t, err, overtime.ErrAlreadyApproved)
	})
}

func TestRoundOTHours(t *testing.T) {
	assert.Equal(t, 2.5, RoundOTHours(2.5))
	assert.Equal(t, 1.33, RoundOTHours(1.3333))
	assert.Equal(t, 0.0, RoundOTHours(-0.5))
}
