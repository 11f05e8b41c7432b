package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/policy"
)

const (
	// Device logs of the previous day are processed during this UTC hour.
	processLogsHour = 1
	// Monthly summaries are regenerated during this UTC hour.
	generateSummariesHour = 2
)

type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	summarySvc    summary.SummaryService
	settingRepo   attendance.SettingRepository
	now           func() time.Time
}

func NewAttendanceJobs(
	attendanceSvc attendance.AttendanceService,
	summarySvc summary.SummaryService,
	settingRepo attendance.SettingRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		summarySvc:    summarySvc,
		settingRepo:   settingRepo,
		now:           time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("process_pending_device_logs", 1*time.Hour, j.ProcessPendingDeviceLogs)
	scheduler.AddJob("generate_monthly_summaries", 1*time.Hour, j.GenerateMonthlySummaries)
}

func (j *AttendanceJobs) settings(ctx context.Context) (policy.Settings, error) {
	resolver, err := policy.LoadResolver(ctx, j.settingRepo)
	if err != nil {
		return policy.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return resolver.Settings(), nil
}

// ProcessPendingDeviceLogs rebuilds yesterday's device days for every employee
// that punched.
func (j *AttendanceJobs) ProcessPendingDeviceLogs(ctx context.Context) error {
	now := j.now().UTC()
	if now.Hour() != processLogsHour {
		return nil
	}

	settings, err := j.settings(ctx)
	if err != nil {
		return err
	}
	if !settings.AutoProcessDeviceLogs {
		slog.Debug("Cron: device log processing disabled")
		return nil
	}

	yesterday := now.Truncate(24*time.Hour).AddDate(0, 0, -1)
	slog.Info("Cron: Starting device log processing", "date", yesterday.Format("2006-01-02"))

	result, err := j.attendanceSvc.ProcessPendingDays(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to process device logs: %w", err)
	}

	slog.Info("Cron: Device log processing completed",
		"date", result.Date,
		"processed", result.Processed,
		"failed", result.Failed,
	)
	return nil
}

// GenerateMonthlySummaries regenerates last month and the current month so
// late corrections to last month are picked up.
func (j *AttendanceJobs) GenerateMonthlySummaries(ctx context.Context) error {
	now := j.now().UTC()
	if now.Hour() != generateSummariesHour {
		return nil
	}

	settings, err := j.settings(ctx)
	if err != nil {
		return err
	}
	if !settings.AutoGenerateMonthlySummaries {
		slog.Debug("Cron: monthly summary generation disabled")
		return nil
	}

	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	previous := current.AddDate(0, -1, 0)

	var errs []error
	for _, period := range []time.Time{previous, current} {
		result, err := j.summarySvc.RegenerateAll(ctx, period.Year(), int(period.Month()))
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to regenerate %04d-%02d: %w", period.Year(), period.Month(), err))
			continue
		}

		slog.Info("Cron: Monthly summaries regenerated",
			"year", result.Year,
			"month", result.Month,
			"regenerated", result.Regenerated,
			"failed", result.Failed,
		)
	}

	return errors.Join(errs...)
}
