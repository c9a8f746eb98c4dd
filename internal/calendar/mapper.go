package calendar

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// ColumnWidth maps a frame size to the pixel width of one day column.
// Wider windows use narrower columns.
func ColumnWidth(frameSize int) float64 {
	switch frameSize {
	case FrameFourWeeks:
		return 36
	case FrameThreeWeeks:
		return 49
	default:
		return 72
	}
}

// DateFromOffset returns the date of the column under pixel x.
// Offsets outside the frame clamp to the first or last day.
func DateFromOffset(x float64, f Frame) time.Time {
	if f.Len() == 0 {
		return time.Time{}
	}
	return f.At(ColumnIndex(x, f))
}

// ColumnIndex returns floor(x / columnWidth) clamped to the frame.
func ColumnIndex(x float64, f Frame) int {
	if f.Len() == 0 || math.IsNaN(x) {
		return 0
	}
	idx := math.Floor(x / f.ColumnWidth())
	if idx < 0 {
		return 0
	}
	if idx > float64(f.Len()-1) {
		return f.Len() - 1
	}
	return int(idx)
}

// OffsetFromDate returns the left pixel offset of date's column.
// The result is not clamped: dates outside the frame give negative
// or over-range offsets.
func OffsetFromDate(date time.Time, f Frame) float64 {
	if f.Len() == 0 {
		return 0
	}
	return float64(daysSince(f.First(), date)) * f.ColumnWidth()
}

// DaysBetween rounds the elapsed time between start and end up to whole days.
func DaysBetween(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d) / float64(day)))
}

// Shift moves t by n calendar days, keeping its wall-clock time.
func Shift(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AtHour returns t's calendar day at hour:00 local time.
func AtHour(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, t.Location())
}

// daysSince counts calendar days from the day of from to the day of to.
func daysSince(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.In(from.Location()).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / day)
}
