package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/config"
	appHTTP "github.com/developnetgeometry/unity-hrms-go/internal/handler/http"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/cache"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/cron"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/jwt"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/metrics"
	"github.com/developnetgeometry/unity-hrms-go/internal/repository/postgresql"
	attendanceService "github.com/developnetgeometry/unity-hrms-go/internal/service/attendance"
	correctionService "github.com/developnetgeometry/unity-hrms-go/internal/service/correction"
	notificationService "github.com/developnetgeometry/unity-hrms-go/internal/service/notification"
	overtimeService "github.com/developnetgeometry/unity-hrms-go/internal/service/overtime"
	summaryService "github.com/developnetgeometry/unity-hrms-go/internal/service/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(context.Background(), cfg.DatabaseURL())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	cacheStore := cache.NewStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	m := metrics.New()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	settingsRepo := postgresql.NewCompanySettingsRepository(db, cfg.Attendance.CorrectionWindowHours)
	notificationRepo := postgresql.NewNotificationRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, notificationService.Config{})

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		siteRepo,
		shiftRepo,
		leaveRepo,
		settingsRepo,
		overtimeRepo,
		cacheStore,
		m,
	)
	overtimeSvc := overtimeService.NewOvertimeService(
		overtimeRepo,
		attendanceRepo,
		employeeRepo,
		siteRepo,
		notificationSvc,
		m,
	)
	correctionSvc := correctionService.NewCorrectionService(
		db,
		correctionRepo,
		attendanceRepo,
		employeeRepo,
		settingsRepo,
		notificationSvc,
		m,
	)
	summarySvc := summaryService.NewSummaryService(summaryRepo, settingsRepo, cacheStore)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, summarySvc)
	overtimeHandler := appHTTP.NewOvertimeHandler(overtimeSvc)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Env: cfg.App.Env, LogLevel: cfg.App.LogLevel},
		jwtService,
		m,
		attendanceHandler,
		overtimeHandler,
		correctionHandler,
	)

	scheduler := cron.NewScheduler()
	jobs := cron.NewAttendanceJobs(
		attendanceRepo,
		overtimeRepo,
		employeeRepo,
		shiftRepo,
		leaveRepo,
		settingsRepo,
		notificationSvc,
		cfg.Attendance.StaleOTCutoffHours,
	)
	jobs.RegisterJobs(scheduler, time.Duration(cfg.Attendance.RecomputeIntervalMinutes)*time.Minute)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	scheduler.Stop()
	notificationSvc.Shutdown()

	slog.Info("Shutdown complete")
}
