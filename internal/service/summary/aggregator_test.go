package summary

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(day int, status attendance.Status, work time.Duration, firstIn, lastOut string, late, early int) attendance.DailyRecord {
	return attendance.DailyRecord{
		EmployeeID: "emp-1",
		Date:       time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
		Metrics: attendance.DailyMetrics{
			TotalTime: work + time.Hour,
			BreakTime: time.Hour,
			WorkTime:  work,
			FirstIn:   timecalc.ParseTime(firstIn),
			LastOut:   timecalc.ParseTime(lastOut),
		},
		Classification: attendance.Classification{
			Status:                status,
			LateMinutes:           late,
			EarlyDepartureMinutes: early,
		},
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestAggregateMonth_PresentAndLateDay(t *testing.T) {
	records := []attendance.DailyRecord{
		record(3, attendance.StatusPresent, 7*time.Hour, "08:00", "17:00", 0, 0),
		record(4, attendance.StatusLate, 7*time.Hour, "08:30", "17:30", 15, 0),
	}

	s := AggregateMonth(records, summary.DefaultWeights())

	assert.Equal(t, 2, s.WorkingDays)
	assert.Equal(t, 2, s.AttendedDays)
	assert.Equal(t, 1, s.LateDays)
	assert.Equal(t, 0, s.EarlyDays)
	assert.Equal(t, 14*time.Hour, s.TotalWorkTime)
	assertDecimal(t, "100.00", s.AttendancePercentage)
	assertDecimal(t, "50.00", s.PunctualityScore)
	assertDecimal(t, "7.00", s.AverageWorkHours)
	assertDecimal(t, "80.00", s.EfficiencyScore)
	require.NotNil(t, s.EarliestIn)
	require.NotNil(t, s.LatestOut)
	assert.Equal(t, "08:00:00", s.EarliestIn.String())
	assert.Equal(t, "17:30:00", s.LatestOut.String())
}

func TestAggregateMonth_Empty(t *testing.T) {
	s := AggregateMonth(nil, summary.DefaultWeights())

	assert.Zero(t, s.WorkingDays)
	assertDecimal(t, "0", s.AttendancePercentage)
	assertDecimal(t, "100", s.PunctualityScore)
	assertDecimal(t, "0", s.AverageWorkHours)
	assertDecimal(t, "0", s.EfficiencyScore)
	assert.Nil(t, s.EarliestIn)
	assert.Nil(t, s.LatestOut)
}

func TestAggregateMonth_CountsByStatus(t *testing.T) {
	records := []attendance.DailyRecord{
		record(3, attendance.StatusAbsent, 0, "", "", 0, 0),
		record(4, attendance.StatusHalfDay, 4*time.Hour, "09:00", "13:00", 45, 240),
		record(5, attendance.StatusEarlyDeparture, 8*time.Hour, "07:00", "16:00", 0, 60),
		record(6, attendance.StatusLeave, 0, "", "", 0, 0),
		record(7, attendance.StatusHoliday, 0, "", "", 0, 0),
		record(10, attendance.StatusPresent, 9*time.Hour, "07:30", "17:30", 0, 0),
	}

	s := AggregateMonth(records, summary.DefaultWeights())

	assert.Equal(t, 6, s.WorkingDays)
	assert.Equal(t, 5, s.AttendedDays)
	assert.Equal(t, 1, s.AbsentDays)
	assert.Equal(t, 1, s.HalfDays)
	assert.Equal(t, 0, s.LateDays)
	assert.Equal(t, 2, s.EarlyDays)
	assert.Equal(t, 1, s.LeaveDays)
	assert.Equal(t, 1, s.HolidayDays)
	assert.Equal(t, 21*time.Hour, s.TotalWorkTime)
	assert.Equal(t, "07:00:00", s.EarliestIn.String())
	assert.Equal(t, "17:30:00", s.LatestOut.String())

	// 5/6 attended, 3/5 punctual.
	assertDecimal(t, "83.33", s.AttendancePercentage)
	assertDecimal(t, "60.00", s.PunctualityScore)
	assertDecimal(t, "4.20", s.AverageWorkHours)
	assertDecimal(t, "74.00", s.EfficiencyScore)
}

func TestAggregateMonth_PunctualityNeverNegative(t *testing.T) {
	records := []attendance.DailyRecord{
		record(3, attendance.StatusLate, 7*time.Hour, "09:00", "16:00", 60, 60),
	}

	s := AggregateMonth(records, summary.DefaultWeights())

	assertDecimal(t, "0", s.PunctualityScore)
}

func TestAggregateMonth_OrderIndependent(t *testing.T) {
	records := []attendance.DailyRecord{
		record(3, attendance.StatusPresent, 7*time.Hour, "08:00", "17:00", 0, 0),
		record(4, attendance.StatusLate, 7*time.Hour, "08:30", "17:30", 15, 0),
		record(5, attendance.StatusAbsent, 0, "", "", 0, 0),
		record(6, attendance.StatusHalfDay, 4*time.Hour, "10:00", "14:00", 105, 180),
		record(7, attendance.StatusEarlyDeparture, 8*time.Hour, "06:45", "15:45", 0, 75),
		record(10, attendance.StatusPresent, 8*time.Hour+17*time.Minute, "07:58", "18:15", 0, 0),
	}
	want := AggregateMonth(records, summary.DefaultWeights())

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]attendance.DailyRecord(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		assert.Equal(t, want, AggregateMonth(shuffled, summary.DefaultWeights()))
	}
}

func TestAggregateMonth_Idempotent(t *testing.T) {
	records := []attendance.DailyRecord{
		record(3, attendance.StatusPresent, 7*time.Hour, "08:00", "17:00", 0, 0),
		record(4, attendance.StatusLate, 7*time.Hour, "08:30", "17:30", 15, 0),
	}

	assert.Equal(t, AggregateMonth(records, summary.DefaultWeights()), AggregateMonth(records, summary.DefaultWeights()))
}

func TestAggregateMonth_CustomWeights(t *testing.T) {
	records := []attendance.DailyRecord{
		record(3, attendance.StatusPresent, 7*time.Hour, "08:00", "17:00", 0, 0),
		record(4, attendance.StatusLate, 7*time.Hour, "08:30", "17:30", 15, 0),
	}
	w := summary.Weights{Attendance: decimal.RequireFromString("0.5"), Punctuality: decimal.RequireFromString("0.5")}

	s := AggregateMonth(records, w)

	assertDecimal(t, "75.00", s.EfficiencyScore)
}
