package reservation

import (
	"time"

	"github.com/nekogravitycat/room-timeline-backend/internal/calendar"
)

// RectFromDates projects a date range onto the frame. Only Left and
// Width are set; Top and Height belong to the row.
func RectFromDates(start, end time.Time, f calendar.Frame) Rect {
	return Rect{
		Left:  calendar.OffsetFromDate(start, f),
		Width: float64(calendar.DaysBetween(start, end)) * f.ColumnWidth(),
	}
}

// DatesFromRect is the inverse of RectFromDates for a freshly drawn
// block: check-in on the day under left, check-out on the day under the
// right edge, and never less than one night.
func DatesFromRect(left, width float64, f calendar.Frame, l Layout) (time.Time, time.Time) {
	start := calendar.AtHour(calendar.DateFromOffset(left, f), l.CheckInHour)
	end := calendar.AtHour(calendar.DateFromOffset(left+width, f), l.CheckOutHour)

	if !end.After(start) {
		end = calendar.AtHour(calendar.Shift(start, 1), l.CheckOutHour)
	}
	return start, end
}

// NewFromSelection builds the reservation drawn by an area selection.
// The block keeps the exact pixels of the selection.
func NewFromSelection(left, width float64, f calendar.Frame, roomID, roomType string, l Layout) Reservation {
	start, end := DatesFromRect(left, width, f, l)
	return Reservation{
		ID:        NewID(),
		GuestName: DefaultGuestName,
		StartDate: start,
		EndDate:   end,
		Color:     DefaultColor,
		Rect: Rect{
			Left:   left,
			Top:    l.TopInset,
			Width:  width,
			Height: l.RowHeight,
		},
		RoomID:   roomID,
		RoomType: roomType,
	}
}

// Relayout recomputes the horizontal geometry of r for frame f.
func Relayout(r Reservation, f calendar.Frame) Reservation {
	rect := RectFromDates(r.StartDate, r.EndDate, f)
	r.Rect.Left = rect.Left
	r.Rect.Width = rect.Width
	return r
}

// RelayoutAll applies Relayout to every reservation of list.
func RelayoutAll(list []Reservation, f calendar.Frame) []Reservation {
	out := make([]Reservation, len(list))
	for i, r := range list {
		out[i] = Relayout(r, f)
	}
	return out
}

// Visible reports whether r overlaps any day of the frame.
func Visible(r Reservation, f calendar.Frame) bool {
	if f.Len() == 0 {
		return false
	}
	frameEnd := calendar.Shift(f.Last(), 1)
	return r.StartDate.Before(frameEnd) && r.EndDate.After(f.First())
}
