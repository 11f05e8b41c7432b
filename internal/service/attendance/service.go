package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/policy"
	"github.com/google/uuid"
)

// Metric sources.
const (
	SourceDevice  = "device"
	SourceManual  = "manual"
	SourcePreview = "preview"
)

type AttendanceServiceImpl struct {
	attendance.EventRepository
	attendance.DailyRecordRepository
	attendance.EmployeeRepository
	attendance.ShiftRepository
	attendance.HolidayRepository
	attendance.LeaveRepository
	settingRepo attendance.SettingRepository
	metrics     metrics.Collector
	now         func() time.Time
}

// evaluation is one computed day plus what is needed to score it.
type evaluation struct {
	record   attendance.DailyRecord
	role     attendance.RolePolicy
	expected time.Duration
}

// evaluate runs the engine for one employee-day. Pair violations are kept on
// the record; they never stop the computation.
func (a *AttendanceServiceImpl) evaluate(ctx context.Context, resolver *policy.Resolver, emp attendance.Employee, date time.Time, pairs attendance.DayPairs) (evaluation, error) {
	assigned, err := a.ShiftRepository.GetActiveShift(ctx, emp.ID, date)
	if err != nil {
		return evaluation{}, fmt.Errorf("failed to get active shift: %w", err)
	}
	shift := resolver.Shift(assigned)

	holiday, err := a.HolidayRepository.IsHoliday(ctx, date, emp.DepartmentID, emp.Location)
	if err != nil {
		return evaluation{}, fmt.Errorf("failed to check holiday: %w", err)
	}

	onLeave, err := a.LeaveRepository.HasApprovedLeave(ctx, emp.ID, date)
	if err != nil {
		return evaluation{}, fmt.Errorf("failed to check approved leave: %w", err)
	}

	_, violations := ValidatePairs(pairs)
	a.metrics.RecordPairViolations(len(violations))

	role := resolver.Role(emp.RoleName)
	dayMetrics := ComputeDailyMetrics(pairs, shift)
	classification := ClassifyStatus(dayMetrics, role, resolver.Settings().Classification, holiday, onLeave)

	if len(dayMetrics.Flags) > 0 {
		slog.Warn("clamped attendance durations",
			"employee_id", emp.ID,
			"date", date.Format(time.DateOnly),
			"flags", dayMetrics.Flags,
		)
	}

	return evaluation{
		record: attendance.DailyRecord{
			EmployeeID:       emp.ID,
			Date:             date,
			Pairs:            pairs,
			Metrics:          dayMetrics,
			Classification:   classification,
			ValidationErrors: violations,
		},
		role:     role,
		expected: shift.WorkingHours,
	}, nil
}

func (a *AttendanceServiceImpl) toResponse(ev evaluation) attendance.DailyResultResponse {
	r := ev.record
	violations := r.ValidationErrors
	if violations == nil {
		violations = []string{}
	}
	flags := r.Metrics.Flags
	if flags == nil {
		flags = []string{}
	}

	return attendance.DailyResultResponse{
		EmployeeID:            r.EmployeeID,
		Date:                  r.Date.Format(time.DateOnly),
		Pairs:                 r.Pairs,
		TotalTime:             timecalc.FormatDuration(r.Metrics.TotalTime),
		BreakTime:             timecalc.FormatDuration(r.Metrics.BreakTime),
		WorkTime:              timecalc.FormatDuration(r.Metrics.WorkTime),
		WorkHours:             timecalc.ToDecimalHours(r.Metrics.WorkTime),
		Overtime:              timecalc.FormatDuration(r.Metrics.Overtime),
		Undertime:             timecalc.FormatDuration(r.Metrics.Undertime),
		FirstIn:               r.Metrics.FirstIn,
		LastOut:               r.Metrics.LastOut,
		Status:                r.Classification.Status,
		LateMinutes:           r.Classification.LateMinutes,
		EarlyDepartureMinutes: r.Classification.EarlyDepartureMinutes,
		PerformanceScore:      PerformanceScore(r.Metrics.WorkTime, ev.expected),
		PunctualityScore:      PunctualityScore(r.Classification, ev.role),
		IsManualEntry:         r.IsManualEntry,
		ValidationErrors:      violations,
		Flags:                 flags,
		Notes:                 r.Notes,
	}
}

func (a *AttendanceServiceImpl) parseDay(date string) (time.Time, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	today := a.now().UTC().Truncate(24 * time.Hour)
	if day.After(today) {
		return time.Time{}, attendance.ErrFutureAttendanceDate
	}
	return day, nil
}

// ComputeDay implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ComputeDay(ctx context.Context, req attendance.ComputeDayRequest) (attendance.DailyResultResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyResultResponse{}, err
	}

	day, err := a.parseDay(req.Date)
	if err != nil {
		return attendance.DailyResultResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.DailyResultResponse{}, err
	}

	resolver, err := policy.LoadResolver(ctx, a.settingRepo)
	if err != nil {
		return attendance.DailyResultResponse{}, err
	}

	ev, err := a.evaluate(ctx, resolver, emp, day, attendance.ToDayPairs(req.Pairs))
	if err != nil {
		a.metrics.RecordDayFailed(SourcePreview)
		return attendance.DailyResultResponse{}, err
	}
	a.metrics.RecordDayProcessed(SourcePreview, string(ev.record.Classification.Status))

	return a.toResponse(ev), nil
}

// RecordManualEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.DailyResultResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyResultResponse{}, err
	}

	day, err := a.parseDay(req.Date)
	if err != nil {
		return attendance.DailyResultResponse{}, err
	}

	pairs := attendance.ToDayPairs(req.Pairs)
	if ok, violations := ValidatePairs(pairs); !ok {
		a.metrics.RecordPairViolations(len(violations))
		return attendance.DailyResultResponse{}, fmt.Errorf("%w: %w", attendance.ErrInconsistentPairs, validator.FromMessages("pairs", violations))
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.DailyResultResponse{}, err
	}

	resolver, err := policy.LoadResolver(ctx, a.settingRepo)
	if err != nil {
		return attendance.DailyResultResponse{}, err
	}

	ev, err := a.evaluate(ctx, resolver, emp, day, pairs)
	if err != nil {
		a.metrics.RecordDayFailed(SourceManual)
		return attendance.DailyResultResponse{}, err
	}
	ev.record.ID = uuid.New().String()
	ev.record.IsManualEntry = true
	ev.record.Notes = req.Notes

	saved, err := a.DailyRecordRepository.Upsert(ctx, ev.record)
	if err != nil {
		a.metrics.RecordDayFailed(SourceManual)
		return attendance.DailyResultResponse{}, fmt.Errorf("failed to save manual attendance: %w", err)
	}
	ev.record = saved
	a.metrics.RecordDayProcessed(SourceManual, string(saved.Classification.Status))

	slog.Info("manual attendance recorded",
		"employee_id", saved.EmployeeID,
		"date", req.Date,
		"status", saved.Classification.Status,
	)

	return a.toResponse(ev), nil
}

// processDeviceDay rebuilds one employee-day from the full event list.
func (a *AttendanceServiceImpl) processDeviceDay(ctx context.Context, resolver *policy.Resolver, employeeID string, day time.Time) (evaluation, error) {
	deviceEvents, err := a.EventRepository.ListByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return evaluation{}, fmt.Errorf("failed to list device events: %w", err)
	}
	if len(deviceEvents) == 0 {
		return evaluation{}, attendance.ErrNoEventsForDay
	}

	events := make([]attendance.Event, 0, len(deviceEvents))
	for _, de := range deviceEvents {
		events = append(events, de.Event)
	}
	SortEvents(events)

	return a.saveDeviceDay(ctx, resolver, employeeID, day, events)
}

// saveDeviceDay reconciles time-sorted events, stores the day and marks its
// logs processed.
func (a *AttendanceServiceImpl) saveDeviceDay(ctx context.Context, resolver *policy.Resolver, employeeID string, day time.Time, events []attendance.Event) (evaluation, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return evaluation{}, err
	}

	ev, err := a.evaluate(ctx, resolver, emp, day, ReconcileEvents(events))
	if err != nil {
		return evaluation{}, err
	}
	ev.record.ID = uuid.New().String()

	saved, err := a.DailyRecordRepository.Upsert(ctx, ev.record)
	if err != nil {
		return evaluation{}, fmt.Errorf("failed to save device attendance: %w", err)
	}
	ev.record = saved

	if err := a.EventRepository.MarkProcessed(ctx, employeeID, day); err != nil {
		slog.Warn("failed to mark device events processed",
			"employee_id", employeeID,
			"date", day.Format("2006-01-02"),
			"error", err,
		)
	}

	return ev, nil
}

// ProcessDeviceDay implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ProcessDeviceDay(ctx context.Context, req attendance.ProcessDayRequest) (attendance.DailyResultResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyResultResponse{}, err
	}

	day, err := a.parseDay(req.Date)
	if err != nil {
		return attendance.DailyResultResponse{}, err
	}

	resolver, err := policy.LoadResolver(ctx, a.settingRepo)
	if err != nil {
		return attendance.DailyResultResponse{}, err
	}

	ev, err := a.processDeviceDay(ctx, resolver, req.EmployeeID, day)
	if err != nil {
		a.metrics.RecordDayFailed(SourceDevice)
		return attendance.DailyResultResponse{}, err
	}
	a.metrics.RecordDayProcessed(SourceDevice, string(ev.record.Classification.Status))

	return a.toResponse(ev), nil
}

// ProcessPendingDays implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ProcessPendingDays(ctx context.Context, date time.Time) (attendance.BatchResult, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	result := attendance.BatchResult{
		Date:   day.Format(time.DateOnly),
		Errors: map[string]string{},
	}

	resolver, err := policy.LoadResolver(ctx, a.settingRepo)
	if err != nil {
		return result, err
	}

	deviceEvents, err := a.EventRepository.ListByDate(ctx, day)
	if err != nil {
		return result, fmt.Errorf("failed to list device events: %w", err)
	}

	grouped := GroupEventsByDay(deviceEvents)
	for _, key := range SortedDayKeys(grouped) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		employeeID := key.EmployeeID
		ev, err := a.saveDeviceDay(ctx, resolver, employeeID, day, grouped[key])
		if err != nil {
			slog.Error("failed to process attendance day",
				"employee_id", employeeID,
				"date", result.Date,
				"error", err,
			)
			a.metrics.RecordDayFailed(SourceDevice)
			result.Failed++
			result.Errors[employeeID] = err.Error()
			continue
		}

		a.metrics.RecordDayProcessed(SourceDevice, string(ev.record.Classification.Status))
		result.Processed++
	}

	return result, nil
}

// EvaluatePenalties implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EvaluatePenalties(ctx context.Context, employeeID string, date string) (attendance.PenaltiesResponse, error) {
	if errs := validateEmployeeDate(employeeID, date); len(errs) > 0 {
		return attendance.PenaltiesResponse{}, errs
	}
	day, _ := validator.IsValidDate(date)

	record, err := a.DailyRecordRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.PenaltiesResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.PenaltiesResponse{}, err
	}

	monthRecords, err := a.DailyRecordRepository.ListByEmployeeAndMonth(ctx, employeeID, day.Year(), int(day.Month()))
	if err != nil {
		return attendance.PenaltiesResponse{}, fmt.Errorf("failed to list month records: %w", err)
	}

	resolver, err := policy.LoadResolver(ctx, a.settingRepo)
	if err != nil {
		return attendance.PenaltiesResponse{}, err
	}
	settings := resolver.Settings().Classification

	violations := CountLunchViolations(monthRecords, settings)

	// Employees without a role are classified as OTHER_STAFF but never penalised.
	p := NoPenalties()
	if strings.TrimSpace(emp.RoleName) != "" {
		p = RolePenalties(record.Classification, resolver.Role(emp.RoleName), settings, violations)
	}

	return attendance.PenaltiesResponse{
		EmployeeID:            employeeID,
		Date:                  date,
		Status:                record.Classification.Status,
		LunchViolations:       violations,
		LatePenalty:           p.LatePenalty,
		EarlyDeparturePenalty: p.EarlyDeparturePenalty,
		LunchViolationPenalty: p.LunchViolationPenalty,
		HalfDayDeduction:      p.HalfDayDeduction,
		FullDayDeduction:      p.FullDayDeduction,
	}, nil
}

func validateEmployeeDate(employeeID, date string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	return errs
}

func NewAttendanceService(
	eventRepo attendance.EventRepository,
	recordRepo attendance.DailyRecordRepository,
	employeeRepo attendance.EmployeeRepository,
	shiftRepo attendance.ShiftRepository,
	holidayRepo attendance.HolidayRepository,
	leaveRepo attendance.LeaveRepository,
	settingRepo attendance.SettingRepository,
	collector metrics.Collector,
) attendance.AttendanceService {
	if collector == nil {
		collector = metrics.NewNop()
	}
	return &AttendanceServiceImpl{
		EventRepository:       eventRepo,
		DailyRecordRepository: recordRepo,
		EmployeeRepository:    employeeRepo,
		ShiftRepository:       shiftRepo,
		HolidayRepository:     holidayRepo,
		LeaveRepository:       leaveRepo,
		settingRepo:           settingRepo,
		metrics:               collector,
		now:                   time.Now,
	}
}
