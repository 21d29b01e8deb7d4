package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/attendance"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/auth"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/company"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/employee"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/leave"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/overtime"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/shift"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/site"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/summary"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/cache"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/geo"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/metrics"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	site.SiteRepository
	shift.ShiftRepository
	leave.LeaveRepository
	settings     company.SettingsRepository
	overtimeRepo overtime.OvertimeRepository
	cache        *cache.Store
	metrics      *metrics.Metrics

	// now is swapped out in tests
	now func() time.Time
}

// NewAttendanceService wires the attendance service with its repositories.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	siteRepo site.SiteRepository,
	shiftRepo shift.ShiftRepository,
	leaveRepo leave.LeaveRepository,
	settingsRepo company.SettingsRepository,
	overtimeRepo overtime.OvertimeRepository,
	store *cache.Store,
	m *metrics.Metrics,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		SiteRepository:       siteRepo,
		ShiftRepository:      shiftRepo,
		LeaveRepository:      leaveRepo,
		settings:             settingsRepo,
		overtimeRepo:         overtimeRepo,
		cache:                store,
		metrics:              m,
		now:                  time.Now,
	}
}

// invalidateSummary drops the cached day stats after a clock event so the
// dashboard reflects it on the next read.
func (a *AttendanceServiceImpl) invalidateSummary(ctx context.Context, companyID string, date time.Time) {
	if a.cache == nil {
		return
	}
	_ = a.cache.Delete(ctx, summary.CacheKey(companyID, date))
}

// localDay resolves the company timezone and returns the current local time
// plus the calendar date (midnight UTC) used as the attendance day key.
func (a *AttendanceServiceImpl) localDay(ctx context.Context, companyID string) (time.Time, time.Time, *time.Location, error) {
	settings, err := a.settings.GetSettings(ctx, companyID)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("failed to get company settings: %w", err)
	}

	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		loc = time.UTC
	}

	nowLocal := a.now().In(loc)
	date := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)

	return nowLocal, date, loc, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockInResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.ClockInResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, identity.EmployeeID, identity.CompanyID)
	if err != nil {
		return attendance.ClockInResponse{}, err
	}
	if emp.EmploymentStatus != employee.EmploymentStatusActive {
		return attendance.ClockInResponse{}, employee.ErrEmployeeInactive
	}

	nowLocal, date, _, err := a.localDay(ctx, identity.CompanyID)
	if err != nil {
		return attendance.ClockInResponse{}, err
	}

	onLeave, err := a.LeaveRepository.HasApprovedLeave(ctx, identity.EmployeeID, date, identity.CompanyID)
	if err != nil {
		return attendance.ClockInResponse{}, fmt.Errorf("failed to check leave: %w", err)
	}
	if onLeave {
		return attendance.ClockInResponse{}, leave.ErrOnApprovedLeave
	}

	holiday, err := a.LeaveRepository.IsPublicHoliday(ctx, date, identity.CompanyID)
	if err != nil {
		return attendance.ClockInResponse{}, fmt.Errorf("failed to check public holiday: %w", err)
	}
	if holiday {
		return attendance.ClockInResponse{}, leave.ErrPublicHoliday
	}

	workSite, err := a.SiteRepository.GetByID(ctx, req.SiteID, identity.CompanyID)
	if err != nil {
		return attendance.ClockInResponse{}, err
	}
	if !workSite.IsActive {
		return attendance.ClockInResponse{}, site.ErrSiteInactive
	}

	if !geo.WithinRadius(req.Latitude, req.Longitude, workSite.Latitude, workSite.Longitude, workSite.RadiusMeters) {
		a.metrics.GeofenceFailures.Inc()
		return attendance.ClockInResponse{}, attendance.ErrOutsideClockInRange
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, identity.EmployeeID, date, identity.CompanyID)
	if err != nil {
		return attendance.ClockInResponse{}, err
	}
	if existing != nil && existing.HasClockedIn() {
		return attendance.ClockInResponse{}, &attendance.AlreadyClockedInError{ExistingClockIn: *existing.ClockInTime}
	}

	// A missing shift assignment does not block clock-in; the record stays
	// provisional until the recompute pass can classify it.
	var shiftID *string
	effectiveShift, err := a.ShiftRepository.GetEffectiveShift(ctx, identity.EmployeeID, date, identity.CompanyID)
	if err != nil && !errors.Is(err, shift.ErrNoEffectiveShift) {
		return attendance.ClockInResponse{}, err
	}
	if err == nil {
		shiftID = &effectiveShift.ID
	}

	clockInUTC := nowLocal.UTC()
	record := attendance.Record{
		EmployeeID:       identity.EmployeeID,
		CompanyID:        identity.CompanyID,
		Date:             date,
		SiteID:           &workSite.ID,
		ShiftID:          shiftID,
		ClockInTime:      &clockInUTC,
		ClockInLatitude:  &req.Latitude,
		ClockInLongitude: &req.Longitude,
		Status:           attendance.StatusOnTime,
		IsProvisional:    true,
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			// Lost the race against a concurrent clock-in; surface the
			// winner's time.
			winner, getErr := a.AttendanceRepository.GetByEmployeeAndDate(ctx, identity.EmployeeID, date, identity.CompanyID)
			if getErr == nil && winner != nil && winner.ClockInTime != nil {
				return attendance.ClockInResponse{}, &attendance.AlreadyClockedInError{ExistingClockIn: *winner.ClockInTime}
			}
		}
		return attendance.ClockInResponse{}, err
	}

	a.metrics.ClockEvents.WithLabelValues("clock_in").Inc()
	a.invalidateSummary(ctx, identity.CompanyID, date)

	return attendance.ClockInResponse{Attendance: attendance.MapRecordToResponse(created)}, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockOutResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.AttendanceRecordID, identity.CompanyID)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}
	if record.EmployeeID != identity.EmployeeID {
		return attendance.ClockOutResponse{}, attendance.ErrNotRecordOwner
	}
	if record.HasClockedOut() {
		return attendance.ClockOutResponse{}, &attendance.AlreadyClockedOutError{ExistingClockOut: *record.ClockOutTime}
	}
	if record.LockedForPayroll {
		return attendance.ClockOutResponse{}, attendance.ErrLockedForPayroll
	}
	if !record.HasClockedIn() {
		return attendance.ClockOutResponse{}, attendance.ErrRecordNotFound
	}

	if record.SiteID != nil {
		workSite, err := a.SiteRepository.GetByID(ctx, *record.SiteID, identity.CompanyID)
		if err != nil {
			return attendance.ClockOutResponse{}, err
		}
		if !geo.WithinRadius(req.Latitude, req.Longitude, workSite.Latitude, workSite.Longitude, workSite.RadiusMeters) {
			a.metrics.GeofenceFailures.Inc()
			return attendance.ClockOutResponse{}, attendance.ErrOutsideClockOutRange
		}
	}

	nowLocal, _, loc, err := a.localDay(ctx, identity.CompanyID)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	clockOutUTC := nowLocal.UTC()
	hours := RoundHours(clockOutUTC.Sub(*record.ClockInTime).Hours())

	record.ClockOutTime = &clockOutUTC
	record.ClockOutLatitude = &req.Latitude
	record.ClockOutLongitude = &req.Longitude
	record.HoursWorked = &hours
	record.IsProvisional = false

	if record.ShiftID != nil {
		effectiveShift, err := a.ShiftRepository.GetByID(ctx, *record.ShiftID, identity.CompanyID)
		if err == nil {
			record.Status = ClassifyStatus(effectiveShift, *record.ClockInTime, hours, loc)
			ot := OvertimeBeyondShift(effectiveShift, record.Date, clockOutUTC, loc)
			if ot > 0 {
				record.OvertimeHours = &ot
			}
		}
	}

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.ClockOutResponse{}, err
	}

	a.metrics.ClockEvents.WithLabelValues("clock_out").Inc()
	a.invalidateSummary(ctx, identity.CompanyID, record.Date)

	return attendance.ClockOutResponse{
		Attendance:    attendance.MapRecordToResponse(record),
		HoursWorked:   record.HoursWorked,
		OvertimeHours: record.OvertimeHours,
	}, nil
}

// MyStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MyStatus(ctx context.Context) (attendance.MyStatusResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.MyStatusResponse{}, err
	}

	_, date, _, err := a.localDay(ctx, identity.CompanyID)
	if err != nil {
		return attendance.MyStatusResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, identity.EmployeeID, date, identity.CompanyID)
	if err != nil {
		return attendance.MyStatusResponse{}, err
	}

	resp := attendance.MyStatusResponse{}
	if record != nil {
		mapped := attendance.MapRecordToResponse(*record)
		resp.Attendance = &mapped
		resp.HasClockedIn = record.HasClockedIn()
		resp.HasClockedOut = record.HasClockedOut()
	}

	active, err := a.overtimeRepo.GetActiveByEmployee(ctx, identity.EmployeeID, identity.CompanyID)
	if err != nil {
		return attendance.MyStatusResponse{}, err
	}
	if active != nil {
		mapped := overtime.MapSessionToResponse(*active)
		resp.ActiveOTSession = &mapped
	}

	return resp, nil
}

// RoundHours rounds a duration in hours to two decimal places.
func RoundHours(hours float64) float64 {
	if hours < 0 {
		return 0
	}
	return math.Round(hours*100) / 100
}

// ClassifyStatus derives the attendance status from the effective shift:
// late past the grace period, half_day under half the scheduled span.
func ClassifyStatus(s shift.Shift, clockIn time.Time, hoursWorked float64, loc *time.Location) attendance.Status {
	localIn := clockIn.In(loc)
	day := time.Date(localIn.Year(), localIn.Month(), localIn.Day(), 0, 0, 0, 0, time.UTC)

	scheduledStart := s.ScheduledStart(day, loc)
	scheduledEnd := s.ScheduledEnd(day, loc)
	graceLimit := scheduledStart.Add(time.Duration(s.GracePeriodMinutes) * time.Minute)

	scheduledHours := scheduledEnd.Sub(scheduledStart).Hours()
	if scheduledHours > 0 && hoursWorked < scheduledHours/2 {
		return attendance.StatusHalfDay
	}
	if localIn.After(graceLimit) {
		return attendance.StatusLate
	}
	return attendance.StatusOnTime
}

// OvertimeBeyondShift returns hours worked past the scheduled shift end,
// rounded to two decimals. Zero when the clock-out is on or before the end.
func OvertimeBeyondShift(s shift.Shift, date time.Time, clockOut time.Time, loc *time.Location) float64 {
	scheduledEnd := s.ScheduledEnd(date, loc)
	if !clockOut.After(scheduledEnd) {
		return 0
	}
	return RoundHours(clockOut.Sub(scheduledEnd).Hours())
}
