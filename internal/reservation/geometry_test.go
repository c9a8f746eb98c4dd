package reservation

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/room-timeline-backend/internal/calendar"
)

var frameStart = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

func frameOf(t *testing.T, size int) calendar.Frame {
	t.Helper()
	f, err := calendar.NewFrame(frameStart, size)
	require.NoError(t, err)
	return f
}

func TestRectFromDates(t *testing.T) {
	f := frameOf(t, 14)

	rect := RectFromDates(
		time.Date(2025, 4, 5, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 8, 11, 0, 0, 0, time.UTC),
		f,
	)
	assert.Equal(t, 4*72.0, rect.Left)
	assert.Equal(t, 3*72.0, rect.Width)
}

func TestRectWidthIsWholeColumnsAndAtLeastOne(t *testing.T) {
	start := time.Date(2025, 4, 3, 14, 0, 0, 0, time.UTC)
	durations := []time.Duration{
		time.Minute,
		5 * time.Hour,
		21 * time.Hour,
		24 * time.Hour,
		49 * time.Hour,
		6*24*time.Hour + 3*time.Hour,
	}

	for _, size := range calendar.FrameSizes {
		f := frameOf(t, size)
		w := f.ColumnWidth()
		for _, d := range durations {
			end := start.Add(d)
			rect := RectFromDates(start, end, f)
			days := math.Ceil(end.Sub(start).Hours() / 24)
			assert.Equal(t, days*w, rect.Width)
			assert.GreaterOrEqual(t, rect.Width, w)
		}
	}
}

func TestNewFromSelection(t *testing.T) {
	f := frameOf(t, 21)
	l := DefaultLayout()

	r := NewFromSelection(100, 200, f, "103", "standard", l)

	assert.True(t, strings.HasPrefix(r.ID, "res-"))
	assert.Equal(t, 100.0, r.Rect.Left)
	assert.Equal(t, 200.0, r.Rect.Width)
	assert.Equal(t, l.TopInset, r.Rect.Top)
	assert.Equal(t, l.RowHeight, r.Rect.Height)
	assert.Equal(t, "103", r.RoomID)
	assert.Equal(t, "standard", r.RoomType)
	assert.Equal(t, DefaultGuestName, r.GuestName)
	// x=100 is column 2, x=300 is column 6
	assert.Equal(t, time.Date(2025, 4, 3, 14, 0, 0, 0, time.UTC), r.StartDate)
	assert.Equal(t, time.Date(2025, 4, 7, 11, 0, 0, 0, time.UTC), r.EndDate)
}

func TestDatesFromRectSameColumnSpansOneNight(t *testing.T) {
	f := frameOf(t, 14)

	start, end := DatesFromRect(80, 20, f, DefaultLayout())

	assert.Equal(t, time.Date(2025, 4, 2, 14, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 4, 3, 11, 0, 0, 0, time.UTC), end)
}

func TestRelayout(t *testing.T) {
	r := Reservation{
		StartDate: time.Date(2025, 4, 5, 14, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 8, 11, 0, 0, 0, time.UTC),
		Rect:      Rect{Left: 1, Top: 5, Width: 2, Height: 34},
	}

	got := Relayout(r, frameOf(t, 28))

	assert.Equal(t, Rect{Left: 4 * 36, Top: 5, Width: 3 * 36, Height: 34}, got.Rect)
	assert.Equal(t, Rect{Left: 1, Top: 5, Width: 2, Height: 34}, r.Rect, "input must not change")
}

func TestVisible(t *testing.T) {
	f := frameOf(t, 14)

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", time.Date(2025, 4, 5, 14, 0, 0, 0, time.UTC), time.Date(2025, 4, 8, 11, 0, 0, 0, time.UTC), true},
		{"starts on last day", time.Date(2025, 4, 14, 14, 0, 0, 0, time.UTC), time.Date(2025, 4, 16, 11, 0, 0, 0, time.UTC), true},
		{"covers whole frame", time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC), time.Date(2025, 5, 1, 11, 0, 0, 0, time.UTC), true},
		{"before", time.Date(2025, 3, 20, 14, 0, 0, 0, time.UTC), time.Date(2025, 3, 25, 11, 0, 0, 0, time.UTC), false},
		{"after", time.Date(2025, 4, 15, 14, 0, 0, 0, time.UTC), time.Date(2025, 4, 17, 11, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(Reservation{StartDate: tt.start, EndDate: tt.end}, f))
		})
	}
}

func TestValidate(t *testing.T) {
	start := time.Date(2025, 4, 5, 14, 0, 0, 0, time.UTC)

	assert.NoError(t, Validate(Reservation{GuestName: "Ada", StartDate: start, EndDate: start.Add(time.Hour)}))
	assert.ErrorIs(t, Validate(Reservation{GuestName: "  ", StartDate: start, EndDate: start.Add(time.Hour)}), ErrGuestNameRequired)
	assert.ErrorIs(t, Validate(Reservation{GuestName: "Ada", StartDate: start, EndDate: start}), ErrInvalidDateRange)
}

func TestListHelpersDoNotMutateInput(t *testing.T) {
	list := []Reservation{{ID: "a", GuestName: "A"}, {ID: "b", GuestName: "B"}}

	replaced := Replace(list, Reservation{ID: "b", GuestName: "B2"})
	removed := Remove(list, "a")
	appended := Append(list, Reservation{ID: "c"})

	assert.Equal(t, "B", list[1].GuestName)
	assert.Equal(t, "B2", replaced[1].GuestName)
	assert.Equal(t, []string{"b"}, IDs(removed))
	assert.Equal(t, []string{"a", "b", "c"}, IDs(appended))
	assert.Len(t, list, 2)

	_, ok := Find(list, "zzz")
	assert.False(t, ok)
}
