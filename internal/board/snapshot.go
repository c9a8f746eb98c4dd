package board

import (
	"github.com/nekogravitycat/room-timeline-backend/internal/announce"
	"github.com/nekogravitycat/room-timeline-backend/internal/calendar"
	"github.com/nekogravitycat/room-timeline-backend/internal/grid"
	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
)

func (b *Board) snapshot() *Snapshot {
	now := b.now()
	s := &Snapshot{
		ID:          b.ID,
		FrameSize:   b.frame.Len(),
		ColumnWidth: b.frame.ColumnWidth(),
		FollowToday: b.followToday,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.frame.Len() > 0 {
		s.FrameStart = b.frame.First()
	}

	for _, d := range b.frame.Days() {
		s.Days = append(s.Days, DayView{
			Date:    d.Date,
			Day:     d.Day,
			Month:   d.Month,
			Year:    d.Year,
			IsToday: calendar.IsToday(d.Date, now),
		})
	}

	for _, row := range b.rows {
		view := RowView{ID: row.ID, RoomType: row.RoomType, Label: row.Label}
		for _, r := range b.grids[row.ID].Reservations() {
			if reservation.Visible(r, b.frame) {
				view.Reservations = append(view.Reservations, r)
			}
		}
		s.Rows = append(s.Rows, view)
	}

	if g := b.activeGrid(); g != nil {
		if sess, ok := g.Session(); ok {
			s.Interaction = interactionView(b.active, sess)
		}
	}
	if g, ok := b.grids[b.focusRow]; ok {
		s.Focused = g.Focused()
	}
	if b.opened != nil {
		opened := *b.opened
		s.Opened = &opened
	}
	if msg, ok := b.bus.Last(announce.Polite); ok {
		s.Polite = msg.Text
	}
	if msg, ok := b.bus.Last(announce.Assertive); ok {
		s.Assertive = msg.Text
	}
	return s
}

func interactionView(rowID string, s grid.Session) *InteractionView {
	v := &InteractionView{RowID: rowID, Mode: s.Mode.String()}
	switch s.Mode {
	case grid.AreaSelecting:
		rect := s.Selection.Rect()
		v.Selection = &rect
	case grid.Dragging, grid.Resizing:
		r := s.Reservation
		v.Reservation = &r
		v.Edge = string(s.Edge)
		v.DropTarget = s.DropTarget
	}
	return v
}
