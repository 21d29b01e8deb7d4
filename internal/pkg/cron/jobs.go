package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/attendance"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/company"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/employee"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/leave"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/notification"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/overtime"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/shift"
)

// AttendanceJobs bundles the background passes that keep attendance data
// consistent: late/half-day reclassification, absence marking after the day
// closes, and force-closing overtime sessions left open.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	overtimeRepo   overtime.OvertimeRepository
	employeeRepo   employee.EmployeeRepository
	shiftRepo      shift.ShiftRepository
	leaveRepo      leave.LeaveRepository
	settingsRepo   company.SettingsRepository
	notifications  notification.Service

	staleOTCutoffHours int
	now                func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	overtimeRepo overtime.OvertimeRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	leaveRepo leave.LeaveRepository,
	settingsRepo company.SettingsRepository,
	notifications notification.Service,
	staleOTCutoffHours int,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo:     attendanceRepo,
		overtimeRepo:       overtimeRepo,
		employeeRepo:       employeeRepo,
		shiftRepo:          shiftRepo,
		leaveRepo:          leaveRepo,
		settingsRepo:       settingsRepo,
		notifications:      notifications,
		staleOTCutoffHours: staleOTCutoffHours,
		now:                time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, recomputeInterval time.Duration) {
	scheduler.Register("recompute_attendance_statuses", recomputeInterval, 0, j.RecomputeStatuses)
	scheduler.Register("mark_absent_employees", 1*time.Hour, 0, j.MarkAbsentEmployees)
	scheduler.Register("auto_close_stale_overtime", 1*time.Hour, 0, j.AutoCloseStaleOvertime)
}

// RecomputeStatuses reclassifies today's provisional records once the shift
// grace period has passed, so an open record flips from on_time to late
// without waiting for clock-out.
func (j *AttendanceJobs) RecomputeStatuses(ctx context.Context) error {
	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	for _, companyID := range companyIDs {
		loc, date := j.companyDay(ctx, companyID)

		records, err := j.attendanceRepo.ListByCompanyAndDate(ctx, companyID, date)
		if err != nil {
			return fmt.Errorf("failed to list records for company %s: %w", companyID, err)
		}

		for _, rec := range records {
			if !rec.IsProvisional || !rec.HasClockedIn() || rec.ShiftID == nil {
				continue
			}
			if rec.Status != attendance.StatusOnTime {
				continue
			}

			sh, err := j.shiftRepo.GetByID(ctx, *rec.ShiftID, companyID)
			if err != nil {
				continue
			}

			graceLimit := sh.ScheduledStart(rec.Date, loc).Add(time.Duration(sh.GracePeriodMinutes) * time.Minute)
			if rec.ClockInTime.In(loc).After(graceLimit) {
				rec.Status = attendance.StatusLate
				if err := j.attendanceRepo.Update(ctx, rec); err != nil {
					slog.Error("Failed to reclassify record", "record_id", rec.ID, "error", err)
				}
			}
		}
	}

	return nil
}

// MarkAbsentEmployees creates records for employees who never clocked in on
// the previous day. Leave days become leave records; public holidays skip
// the company entirely.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	for _, companyID := range companyIDs {
		loc, today := j.companyDay(ctx, companyID)

		// Wait until the previous day has fully closed locally.
		if j.now().In(loc).Hour() < 1 {
			continue
		}
		yesterday := today.Add(-24 * time.Hour)

		holiday, err := j.leaveRepo.IsPublicHoliday(ctx, yesterday, companyID)
		if err != nil {
			return fmt.Errorf("failed to check holiday for company %s: %w", companyID, err)
		}
		if holiday {
			continue
		}

		employees, err := j.employeeRepo.ListActiveByCompany(ctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to list employees for company %s: %w", companyID, err)
		}

		for _, emp := range employees {
			existing, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, yesterday, companyID)
			if err != nil {
				slog.Error("Failed to check record", "employee_id", emp.ID, "error", err)
				continue
			}
			if existing != nil {
				continue
			}

			status := attendance.StatusAbsent
			onLeave, err := j.leaveRepo.HasApprovedLeave(ctx, emp.ID, yesterday, companyID)
			if err == nil && onLeave {
				status = attendance.StatusLeave
			}

			_, err = j.attendanceRepo.Create(ctx, attendance.Record{
				EmployeeID:    emp.ID,
				CompanyID:     companyID,
				Date:          yesterday,
				Status:        status,
				IsProvisional: false,
			})
			if err != nil {
				// A concurrent clock-in or a previous pass already made
				// the record.
				if errors.Is(err, attendance.ErrAlreadyClockedIn) {
					continue
				}
				slog.Error("Failed to create absence record", "employee_id", emp.ID, "error", err)
				continue
			}

			if status == attendance.StatusAbsent && j.notifications != nil && emp.UserID != nil {
				_ = j.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
					CompanyID:   companyID,
					RecipientID: *emp.UserID,
					Type:        notification.TypeMarkedAbsent,
					Title:       "Marked absent",
					Message:     "You were marked absent for " + yesterday.Format("2006-01-02") + ". Submit a correction request if this is wrong.",
					Data:        map[string]interface{}{"date": yesterday.Format("2006-01-02")},
				})
			}
		}
	}

	return nil
}

// AutoCloseStaleOvertime force-closes sessions that stayed active past the
// cutoff. The closed session is capped at the cutoff length so a forgotten
// ot-out cannot inflate payable hours.
func (j *AttendanceJobs) AutoCloseStaleOvertime(ctx context.Context) error {
	stale, err := j.overtimeRepo.ListStaleActive(ctx, j.staleOTCutoffHours)
	if err != nil {
		return fmt.Errorf("failed to list stale overtime sessions: %w", err)
	}

	closed := 0
	for _, session := range stale {
		otOut := session.OTInTime.Add(time.Duration(j.staleOTCutoffHours) * time.Hour)
		total := float64(j.staleOTCutoffHours)

		session.OTOutTime = &otOut
		session.TotalOTHours = &total

		if err := j.overtimeRepo.Complete(ctx, session); err != nil {
			if errors.Is(err, overtime.ErrSessionNotActive) {
				continue
			}
			slog.Error("Failed to auto-close overtime session", "session_id", session.ID, "error", err)
			continue
		}
		closed++
	}

	if closed > 0 {
		slog.Info("Auto-closed stale overtime sessions", "count", closed, "cutoff_hours", j.staleOTCutoffHours)
	}

	return nil
}

// companyDay resolves a company's timezone and current attendance date.
func (j *AttendanceJobs) companyDay(ctx context.Context, companyID string) (*time.Location, time.Time) {
	loc := time.UTC
	if settings, err := j.settingsRepo.GetSettings(ctx, companyID); err == nil {
		if l, lerr := time.LoadLocation(settings.Timezone); lerr == nil {
			loc = l
		}
	}

	nowLocal := j.now().In(loc)
	date := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)

	return loc, date
}
