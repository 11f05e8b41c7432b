package postgresql

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/jackc/pgx/v5/pgtype"
)

// clockParam encodes a nullable time of day for a TIME column.
func clockParam(c *timecalc.Clock) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(*c) * int64(time.Second/time.Microsecond), Valid: true}
}

func clockFromPg(t pgtype.Time) *timecalc.Clock {
	if !t.Valid {
		return nil
	}
	c := timecalc.Clock(t.Microseconds / int64(time.Second/time.Microsecond))
	return &c
}

// dayRange returns the [start, end) timestamps covering date's calendar day.
func dayRange(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

// monthRange returns the first day of the month and of the following month.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func seconds(d time.Duration) float64 {
	return d.Seconds()
}

func fromSeconds(s int64) time.Duration {
	return time.Duration(s) * time.Second
}
