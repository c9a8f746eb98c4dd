package grid

import (
	"fmt"
	"time"

	"github.com/nekogravitycat/room-timeline-backend/internal/announce"
	"github.com/nekogravitycat/room-timeline-backend/internal/calendar"
	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
)

// KeyDown applies key to the focused reservation. It reports whether the
// key is bound, whether or not the move passed its boundary check.
func (g *Grid) KeyDown(key string) bool {
	if g.focused == "" {
		return false
	}

	if key == KeyEscape {
		g.focused = ""
		return true
	}

	r, ok := reservation.Find(g.reservations, g.focused)
	if !ok {
		return false
	}

	switch key {
	case KeyArrowLeft:
		g.shiftDays(r, -1)
	case KeyArrowRight:
		g.shiftDays(r, 1)
	case KeyArrowUp:
		g.shiftRow(r, -1)
	case KeyArrowDown:
		g.shiftRow(r, 1)
	case KeyDelete, KeyBackspace:
		g.focused = ""
		g.emit(reservation.Remove(g.reservations, r.ID))
		g.announcer.Announce(fmt.Sprintf("Reservation for %s deleted", r.GuestName), announce.Polite)
	case KeyEnter, KeySpace:
		g.open(r)
	default:
		return false
	}
	return true
}

func (g *Grid) shiftDays(r reservation.Reservation, days int) {
	start := calendar.Shift(r.StartDate, days)
	end := calendar.Shift(r.EndDate, days)

	if days < 0 && start.Before(g.frame.First()) {
		g.announcer.Announce("Cannot move reservation before the first visible day", announce.Assertive)
		return
	}
	if days > 0 && end.After(g.frame.Last()) {
		g.announcer.Announce("Cannot move reservation past the last visible day", announce.Assertive)
		return
	}

	r.StartDate = start
	r.EndDate = end
	r.Rect.Left += float64(days) * g.frame.ColumnWidth()

	g.emit(reservation.Replace(g.reservations, r))
	g.announcer.Announce(fmt.Sprintf("Reservation for %s moved to %s to %s",
		r.GuestName, formatDay(start), formatDay(end)), announce.Polite)
}

func (g *Grid) shiftRow(r reservation.Reservation, dir int) {
	idx := -1
	for i, row := range g.rows {
		if row.ID == r.RoomID {
			idx = i
			break
		}
	}
	target := idx + dir
	if idx < 0 || target < 0 || target >= len(g.rows) {
		g.announcer.Announce("No room in that direction", announce.Assertive)
		return
	}

	row := g.rows[target]
	r.RoomID = row.ID
	if row.RoomType != "" {
		r.RoomType = row.RoomType
	}
	r.Rect.Top += float64(dir) * g.layout.RowHeight

	g.emit(reservation.Replace(g.reservations, r))
	g.announcer.Announce(fmt.Sprintf("Reservation for %s moved to room %s", r.GuestName, row.ID), announce.Polite)
}

func formatDay(t time.Time) string {
	return t.Format("Jan 2")
}
