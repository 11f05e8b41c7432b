package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	summaryService "github.com/cmlabs-hris/hris-attendance-go/internal/service/summary"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		return
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheus(registry, cfg.Metrics.Namespace)

	eventRepo := postgresql.NewAttendanceLogRepository(db)
	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	summaryRepo := postgresql.NewMonthlySummaryRepository(db)

	var settingRepo attendance.SettingRepository = postgresql.NewSystemConfigurationRepository(db)
	var settingsInvalidator appHTTP.SettingsInvalidator
	if addr := cfg.RedisAddr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		settingCache := cache.NewSettingCache(rdb, settingRepo, cfg.Redis.SettingsTTL)
		settingRepo = settingCache
		settingsInvalidator = settingCache
		slog.Info("Settings cache enabled", "addr", addr, "ttl", cfg.Redis.SettingsTTL)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(
		eventRepo,
		recordRepo,
		employeeRepo,
		shiftRepo,
		holidayRepo,
		leaveRepo,
		settingRepo,
		collector,
	)
	summarySvc := summaryService.NewSummaryService(
		db,
		summaryRepo,
		recordRepo,
		settingRepo,
		collector,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	summaryHandler := appHTTP.NewSummaryHandler(summarySvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsInvalidator)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		summaryHandler,
		settingsHandler,
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
			Gatherer:       registry,
		},
	)

	scheduler := cron.NewScheduler(collector)
	if cfg.App.EnableCron {
		cron.NewAttendanceJobs(attendanceSvc, summarySvc, settingRepo).RegisterJobs(scheduler)
		scheduler.Start()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("Shutting down server...")

	if cfg.App.EnableCron {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
