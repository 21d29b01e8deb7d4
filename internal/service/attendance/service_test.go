package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/attendance"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/company"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/employee"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/leave"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/overtime"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/shift"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/site"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/user"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/cache"
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
	testShiftID    = "shift-1"

	klccLat = 3.1579
	klccLon = 101.7123
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

// --- fakes ---

type fakeAttendanceRepo struct {
	byID      map[string]attendance.Record
	byDay     map[string]attendance.Record
	created   []attendance.Record
	updated   []attendance.Record
	createErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		byID:  map[string]attendance.Record{},
		byDay: map[string]attendance.Record{},
	}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	if f.createErr != nil {
		return attendance.Record{}, f.createErr
	}
	record.ID = "rec-created"
	f.created = append(f.created, record)
	f.byID[record.ID] = record
	f.byDay[dayKey(record.EmployeeID, record.Date)] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	rec, ok := f.byID[id]
	if !ok || rec.CompanyID != companyID {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	rec, ok := f.byDay[dayKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.Record) error {
	f.updated = append(f.updated, record)
	f.byID[record.ID] = record
	return nil
}

func (f *fakeAttendanceRepo) ApplyCorrection(ctx context.Context, recordID string, correctionID string, clockIn, clockOut *time.Time, companyID string) error {
	return nil
}

func (f *fakeAttendanceRepo) ListByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]attendance.Record, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	status employee.EmploymentStatus
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	status := f.status
	if status == "" {
		status = employee.EmploymentStatusActive
	}
	return employee.Employee{ID: id, CompanyID: companyID, EmploymentStatus: status}, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string, companyID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return []string{testCompanyID}, nil
}

func (f *fakeEmployeeRepo) GetAdminUserIDs(ctx context.Context, companyID string) ([]string, error) {
	return nil, nil
}

type fakeSiteRepo struct {
	site site.Site
	err  error
}

func (f *fakeSiteRepo) GetByID(ctx context.Context, id string, companyID string) (site.Site, error) {
	if f.err != nil {
		return site.Site{}, f.err
	}
	return f.site, nil
}

type fakeShiftRepo struct {
	shift shift.Shift
	err   error
}

func (f *fakeShiftRepo) GetEffectiveShift(ctx context.Context, employeeID string, date time.Time, companyID string) (shift.Shift, error) {
	if f.err != nil {
		return shift.Shift{}, f.err
	}
	return f.shift, nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	if f.err != nil {
		return shift.Shift{}, f.err
	}
	return f.shift, nil
}

type fakeLeaveRepo struct {
	onLeave bool
	holiday bool
}

func (f *fakeLeaveRepo) HasApprovedLeave(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	return f.onLeave, nil
}

func (f *fakeLeaveRepo) IsPublicHoliday(ctx context.Context, date time.Time, companyID string) (bool, error) {
	return f.holiday, nil
}

type fakeSettingsRepo struct{}

func (f *fakeSettingsRepo) GetSettings(ctx context.Context, companyID string) (company.Settings, error) {
	return company.Settings{
		CompanyID:             companyID,
		Timezone:              "Asia/Kuala_Lumpur",
		CorrectionWindowHours: 24,
	}, nil
}

type fakeOvertimeRepo struct {
	active *overtime.Session
}

func (f *fakeOvertimeRepo) Create(ctx context.Context, session overtime.Session) (overtime.Session, error) {
	return session, nil
}

func (f *fakeOvertimeRepo) GetByID(ctx context.Context, id string, companyID string) (overtime.Session, error) {
	return overtime.Session{}, overtime.ErrSessionNotFound
}

func (f *fakeOvertimeRepo) GetActiveByEmployee(ctx context.Context, employeeID string, companyID string) (*overtime.Session, error) {
	return f.active, nil
}

func (f *fakeOvertimeRepo) Complete(ctx context.Context, session overtime.Session) error {
	return nil
}

func (f *fakeOvertimeRepo) Approve(ctx context.Context, id string, reviewerID string, companyID string) error {
	return nil
}

func (f *fakeOvertimeRepo) ListStaleActive(ctx context.Context, olderThanHours int) ([]overtime.Session, error) {
	return nil, nil
}

// --- fixture ---

type fixture struct {
	svc      *AttendanceServiceImpl
	attRepo  *fakeAttendanceRepo
	siteRepo *fakeSiteRepo
	otRepo   *fakeOvertimeRepo
	leave    *fakeLeaveRepo
	emp      *fakeEmployeeRepo
	shifts   *fakeShiftRepo
}

func dayShift() shift.Shift {
	return shift.Shift{
		ID:                 testShiftID,
		CompanyID:          testCompanyID,
		StartTime:          time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:            time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
		GracePeriodMinutes: 15,
	}
}

func newFixture(now time.Time) *fixture {
	attRepo := newFakeAttendanceRepo()
	siteRepo := &fakeSiteRepo{site: site.Site{
		ID: testSiteID, CompanyID: testCompanyID,
		Latitude: klccLat, Longitude: klccLon, RadiusMeters: 150, IsActive: true,
	}}
	otRepo := &fakeOvertimeRepo{}
	leaveRepo := &fakeLeaveRepo{}
	empRepo := &fakeEmployeeRepo{}
	shiftRepo := &fakeShiftRepo{shift: dayShift()}

	svc := NewAttendanceService(
		attRepo, empRepo, siteRepo, shiftRepo, leaveRepo, &fakeSettingsRepo{}, otRepo, cache.NewStore("", "", 0), metrics.New(),
	).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }

	return &fixture{
		svc: svc, attRepo: attRepo, siteRepo: siteRepo, otRepo: otRepo,
		leave: leaveRepo, emp: empRepo, shifts: shiftRepo,
	}
}

// --- tests ---

func TestClockIn(t *testing.T) {
	// 09:00 in Kuala Lumpur
	now := time.Date(2025, 3, 3, 1, 0, 0, 0, time.UTC)
	ctx := authedContext(t, user.RoleEmployee)

	t.Run("success creates provisional record", func(t *testing.T) {
		f := newFixture(now)

		resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			SiteID: testSiteID, Latitude: klccLat, Longitude: klccLon,
		})
		require.NoError(t, err)

		require.Len(t, f.attRepo.created, 1)
		created := f.attRepo.created[0]
		assert.Equal(t, testEmployeeID, created.EmployeeID)
		assert.Equal(t, attendance.StatusOnTime, created.Status)
		assert.True(t, created.IsProvisional)
		require.NotNil(t, created.ShiftID)
		assert.Equal(t, testShiftID, *created.ShiftID)
		assert.Equal(t, "2025-03-03", resp.Attendance.Date)
		assert.NotNil(t, resp.Attendance.ClockInTime)
	})

	t.Run("outside geofence is rejected", func(t *testing.T) {
		f := newFixture(now)

		// Penang is a few hundred kilometres from the site
		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			SiteID: testSiteID, Latitude: 5.4141, Longitude: 100.3288,
		})
		assert.ErrorIs(t, err, attendance.ErrOutsideClockInRange)
		assert.Empty(t, f.attRepo.created)
	})

	t.Run("duplicate returns existing clock-in time", func(t *testing.T) {
		f := newFixture(now)

		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			SiteID: testSiteID, Latitude: klccLat, Longitude: klccLon,
		})
		require.NoError(t, err)

		_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{
			SiteID: testSiteID, Latitude: klccLat, Longitude: klccLon,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

		var dup *attendance.AlreadyClockedInError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, now, dup.ExistingClockIn)
	})

	t.Run("approved leave blocks clock-in", func(t *testing.T) {
		f := newFixture(now)
		f.leave.onLeave = true

		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			SiteID: testSiteID, Latitude: klccLat, Longitude: klccLon,
		})
		assert.ErrorIs(t, err, leave.ErrOnApprovedLeave)
	})

	t.Run("public holiday blocks clock-in", func(t *testing.T) {
		f := newFixture(now)
		f.leave.holiday = true

		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			SiteID: testSiteID, Latitude: klccLat, Longitude: klccLon,
		})
		assert.ErrorIs(t, err, leave.ErrPublicHoliday)
	})

	t.Run("inactive site is rejected", func(t *testing.T) {
		f := newFixture(now)
		f.siteRepo.site.IsActive = false

		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			SiteID: testSiteID, Latitude: klccLat, Longitude: klccLon,
		})
		assert.ErrorIs(t, err, site.ErrSiteInactive)
	})

	t.Run("missing shift still allows clock-in", func(t *testing.T) {
		f := newFixture(now)
		f.shifts.err = shift.ErrNoEffectiveShift

		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			SiteID: testSiteID, Latitude: klccLat, Longitude: klccLon,
		})
		require.NoError(t, err)
		require.Len(t, f.attRepo.created, 1)
		assert.Nil(t, f.attRepo.created[0].ShiftID)
	})

	t.Run("resigned employee is rejected", func(t *testing.T) {
		f := newFixture(now)
		f.emp.status = employee.EmploymentStatusResigned

		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			SiteID: testSiteID, Latitude: klccLat, Longitude: klccLon,
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
	})
}

func TestClockOut(t *testing.T) {
	ctx := authedContext(t, user.RoleEmployee)
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	require.NoError(t, err)

	// Clocked in at 09:00 local on 2025-03-03
	clockIn := time.Date(2025, 3, 3, 9, 0, 0, 0, loc).UTC()
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	seed := func(f *fixture, rec attendance.Record) {
		f.attRepo.byID[rec.ID] = rec
		f.attRepo.byDay[dayKey(rec.EmployeeID, rec.Date)] = rec
	}

	baseRecord := func() attendance.Record {
		siteID := testSiteID
		shiftID := testShiftID
		in := clockIn
		return attendance.Record{
			ID: "rec-1", EmployeeID: testEmployeeID, CompanyID: testCompanyID,
			Date: date, SiteID: &siteID, ShiftID: &shiftID,
			ClockInTime: &in, Status: attendance.StatusOnTime, IsProvisional: true,
		}
	}

	t.Run("computes hours and clears provisional flag", func(t *testing.T) {
		// Clock out at 18:00 local
		f := newFixture(time.Date(2025, 3, 3, 18, 0, 0, 0, loc))
		seed(f, baseRecord())

		resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			AttendanceRecordID: "rec-1", Latitude: klccLat, Longitude: klccLon,
		})
		require.NoError(t, err)

		require.NotNil(t, resp.HoursWorked)
		assert.InDelta(t, 9.0, *resp.HoursWorked, 0.01)
		assert.Nil(t, resp.OvertimeHours)

		require.Len(t, f.attRepo.updated, 1)
		assert.False(t, f.attRepo.updated[0].IsProvisional)
		assert.Equal(t, attendance.StatusOnTime, f.attRepo.updated[0].Status)
	})

	t.Run("work past shift end yields overtime hours", func(t *testing.T) {
		// Clock out at 20:00 local, shift ends 18:00
		f := newFixture(time.Date(2025, 3, 3, 20, 0, 0, 0, loc))
		seed(f, baseRecord())

		resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			AttendanceRecordID: "rec-1", Latitude: klccLat, Longitude: klccLon,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.OvertimeHours)
		assert.InDelta(t, 2.0, *resp.OvertimeHours, 0.01)
	})

	t.Run("already clocked out returns existing time", func(t *testing.T) {
		f := newFixture(time.Date(2025, 3, 3, 19, 0, 0, 0, loc))
		rec := baseRecord()
		out := time.Date(2025, 3, 3, 18, 0, 0, 0, loc).UTC()
		rec.ClockOutTime = &out
		seed(f, rec)

		_, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			AttendanceRecordID: "rec-1", Latitude: klccLat, Longitude: klccLon,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)

		var dup *attendance.AlreadyClockedOutError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, out, dup.ExistingClockOut)
	})

	t.Run("locked record cannot be clocked out", func(t *testing.T) {
		f := newFixture(time.Date(2025, 3, 3, 18, 0, 0, 0, loc))
		rec := baseRecord()
		rec.LockedForPayroll = true
		seed(f, rec)

		_, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			AttendanceRecordID: "rec-1", Latitude: klccLat, Longitude: klccLon,
		})
		assert.ErrorIs(t, err, attendance.ErrLockedForPayroll)
	})

	t.Run("someone else's record is rejected", func(t *testing.T) {
		f := newFixture(time.Date(2025, 3, 3, 18, 0, 0, 0, loc))
		rec := baseRecord()
		rec.EmployeeID = "emp-other"
		seed(f, rec)

		_, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			AttendanceRecordID: "rec-1", Latitude: klccLat, Longitude: klccLon,
		})
		assert.ErrorIs(t, err, attendance.ErrNotRecordOwner)
	})

	t.Run("outside geofence is rejected", func(t *testing.T) {
		f := newFixture(time.Date(2025, 3, 3, 18, 0, 0, 0, loc))
		seed(f, baseRecord())

		_, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			AttendanceRecordID: "rec-1", Latitude: 5.4141, Longitude: 100.3288,
		})
		assert.ErrorIs(t, err, attendance.ErrOutsideClockOutRange)
	})
}

func TestMyStatus(t *testing.T) {
	ctx := authedContext(t, user.RoleEmployee)
	now := time.Date(2025, 3, 3, 2, 0, 0, 0, time.UTC)

	t.Run("no record yet", func(t *testing.T) {
		f := newFixture(now)

		resp, err := f.svc.MyStatus(ctx)
		require.NoError(t, err)
		assert.Nil(t, resp.Attendance)
		assert.False(t, resp.HasClockedIn)
		assert.False(t, resp.HasClockedOut)
		assert.Nil(t, resp.ActiveOTSession)
	})

	t.Run("clocked in with active overtime", func(t *testing.T) {
		f := newFixture(now)
		in := now.Add(-2 * time.Hour)
		date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
		f.attRepo.byDay[dayKey(testEmployeeID, date)] = attendance.Record{
			ID: "rec-1", EmployeeID: testEmployeeID, CompanyID: testCompanyID,
			Date: date, ClockInTime: &in, Status: attendance.StatusOnTime,
		}
		f.otRepo.active = &overtime.Session{
			ID: "ot-1", EmployeeID: testEmployeeID, CompanyID: testCompanyID,
			Status: overtime.SessionStatusActive, OTInTime: in,
		}

		resp, err := f.svc.MyStatus(ctx)
		require.NoError(t, err)
		require.NotNil(t, resp.Attendance)
		assert.True(t, resp.HasClockedIn)
		assert.False(t, resp.HasClockedOut)
		require.NotNil(t, resp.ActiveOTSession)
		assert.Equal(t, "ot-1", resp.ActiveOTSession.ID)
	})
}

func TestClassifyStatus(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	require.NoError(t, err)
	sh := dayShift()

	tests := []struct {
		name    string
		clockIn time.Time
		hours   float64
		want    attendance.Status
	}{
		{"on time", time.Date(2025, 3, 3, 9, 0, 0, 0, loc), 9, attendance.StatusOnTime},
		{"within grace period", time.Date(2025, 3, 3, 9, 14, 0, 0, loc), 8.75, attendance.StatusOnTime},
		{"past grace period", time.Date(2025, 3, 3, 9, 16, 0, 0, loc), 8.7, attendance.StatusLate},
		{"under half the shift", time.Date(2025, 3, 3, 9, 0, 0, 0, loc), 4, attendance.StatusHalfDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(sh, tt.clockIn.UTC(), tt.hours, loc)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOvertimeBeyondShift(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	require.NoError(t, err)
	sh := dayShift()
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	t.Run("no overtime before shift end", func(t *testing.T) {
		out := time.Date(2025, 3, 3, 17, 30, 0, 0, loc)
		assert.Zero(t, OvertimeBeyondShift(sh, date, out.UTC(), loc))
	})

	t.Run("ninety minutes past shift end", func(t *testing.T) {
		out := time.Date(2025, 3, 3, 19, 30, 0, 0, loc)
		assert.InDelta(t, 1.5, OvertimeBeyondShift(sh, date, out.UTC(), loc), 0.01)
	})
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 8.5, RoundHours(8.5))
	assert.Equal(t, 8.33, RoundHours(8.3333))
	assert.Equal(t, 0.0, RoundHours(-1))
}
