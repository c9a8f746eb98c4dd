package calendar

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/room-timeline-backend/internal/pkg/apperror"
)

var ErrInvalidFrameSize = apperror.New(http.StatusBadRequest, "frame size must be 14, 21 or 28 days")

// Supported frame sizes, in days.
const (
	FrameTwoWeeks   = 14
	FrameThreeWeeks = 21
	FrameFourWeeks  = 28
)

// FrameSizes lists the supported frame sizes from narrowest to widest window.
var FrameSizes = []int{FrameTwoWeeks, FrameThreeWeeks, FrameFourWeeks}

// frameStep is the zoom increment between two adjacent frame sizes.
const frameStep = 7

// Day is one column of the visible window.
type Day struct {
	Date  time.Time
	Day   int
	Month time.Month
	Year  int
}

// Frame is the ordered, contiguous sequence of visible days.
// A Frame is immutable once built.
type Frame struct {
	days []Day
}

// ValidFrameSize reports whether size is one of FrameSizes.
func ValidFrameSize(size int) bool {
	for _, s := range FrameSizes {
		if s == size {
			return true
		}
	}
	return false
}

// NewFrame builds a frame of size days starting at the local midnight of start.
func NewFrame(start time.Time, size int) (Frame, error) {
	if !ValidFrameSize(size) {
		return Frame{}, ErrInvalidFrameSize
	}

	first := Midnight(start)
	days := make([]Day, size)
	for i := range days {
		d := first.AddDate(0, 0, i)
		days[i] = Day{
			Date:  d,
			Day:   d.Day(),
			Month: d.Month(),
			Year:  d.Year(),
		}
	}
	return Frame{days: days}, nil
}

// Len returns the number of days in the frame.
func (f Frame) Len() int { return len(f.days) }

// Days returns a copy of the frame's days.
func (f Frame) Days() []Day {
	out := make([]Day, len(f.days))
	copy(out, f.days)
	return out
}

// At returns the date at column i. The caller must keep i in range.
func (f Frame) At(i int) time.Time { return f.days[i].Date }

// First returns the first visible date, or the zero time for an empty frame.
func (f Frame) First() time.Time {
	if len(f.days) == 0 {
		return time.Time{}
	}
	return f.days[0].Date
}

// Last returns the last visible date, or the zero time for an empty frame.
func (f Frame) Last() time.Time {
	if len(f.days) == 0 {
		return time.Time{}
	}
	return f.days[len(f.days)-1].Date
}

// ColumnWidth returns the pixel width of one column for this frame.
func (f Frame) ColumnWidth() float64 { return ColumnWidth(len(f.days)) }

// Contains reports whether t falls on one of the frame's days.
func (f Frame) Contains(t time.Time) bool {
	if len(f.days) == 0 {
		return false
	}
	i := daysSince(f.First(), t)
	return i >= 0 && i < len(f.days)
}

// Next returns the frame that immediately follows f with the same size.
func (f Frame) Next() Frame {
	next, _ := NewFrame(f.First().AddDate(0, 0, len(f.days)), len(f.days))
	return next
}

// Prev returns the frame that immediately precedes f with the same size.
func (f Frame) Prev() Frame {
	prev, _ := NewFrame(f.First().AddDate(0, 0, -len(f.days)), len(f.days))
	return prev
}

// ZoomIn narrows the window by one step (more room per day), never below two weeks.
func ZoomIn(size int) int {
	if size > FrameTwoWeeks {
		return size - frameStep
	}
	return size
}

// ZoomOut widens the window by one step, never above four weeks.
func ZoomOut(size int) int {
	if size < FrameFourWeeks {
		return size + frameStep
	}
	return size
}

// Midnight truncates t to 00:00 of its own calendar day and location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t, now time.Time) bool {
	now = now.In(t.Location())
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}
