package board

import (
	"sync"
	"time"

	"github.com/nekogravitycat/room-timeline-backend/internal/announce"
	"github.com/nekogravitycat/room-timeline-backend/internal/calendar"
	"github.com/nekogravitycat/room-timeline-backend/internal/grid"
	"github.com/nekogravitycat/room-timeline-backend/internal/queue"
	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
)

// Board owns the canonical reservation list of one timeline view and one
// grid per room row. Every method expects b.mu to be held by the caller.
type Board struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	frame        calendar.Frame
	followToday  bool
	layout       reservation.Layout
	rows         []Row
	reservations []reservation.Reservation
	grids        map[string]*grid.Grid
	doc          *grid.Document
	bus          *announce.Bus
	now          func() time.Time

	active   string // row holding the gesture in progress
	focusRow string
	opened   *reservation.Reservation

	action  queue.Action
	pending []queue.ReservationsCommitted
}

type boardConfig struct {
	ID           string
	Frame        calendar.Frame
	FollowToday  bool
	Rows         []Row
	Reservations []reservation.Reservation
	Layout       reservation.Layout
	Now          func() time.Time
}

func newBoard(cfg boardConfig) *Board {
	now := cfg.Now()
	b := &Board{
		ID:          cfg.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
		frame:       cfg.Frame,
		followToday: cfg.FollowToday,
		layout:      cfg.Layout,
		rows:        append([]Row(nil), cfg.Rows...),
		grids:       make(map[string]*grid.Grid, len(cfg.Rows)),
		doc:         grid.NewDocument(),
		bus:         announce.NewBus(),
		now:         cfg.Now,
	}
	b.reservations = b.prepare(cfg.Reservations)

	valid := make([]grid.Row, len(b.rows))
	for i, r := range b.rows {
		valid[i] = grid.Row{ID: r.ID, RoomType: r.RoomType}
	}

	for _, r := range b.rows {
		rowID := r.ID
		b.grids[rowID] = grid.New(grid.Config{
			RowID:        rowID,
			RoomType:     r.RoomType,
			Frame:        b.frame,
			Reservations: b.rowReservations(rowID),
			ValidRows:    valid,
			Layout:       b.layout,
			Listeners:    b.doc,
			Announcer:    b.bus,
			OnUpdate: func(list []reservation.Reservation) {
				b.applyRowUpdate(rowID, list)
			},
			OnSelect: func(res reservation.Reservation) {
				b.selectReservation(rowID, res)
			},
		})
	}
	return b
}

// prepare fills defaults on seeded reservations and projects them onto
// the current frame.
func (b *Board) prepare(list []reservation.Reservation) []reservation.Reservation {
	out := make([]reservation.Reservation, len(list))
	for i, r := range list {
		if r.ID == "" {
			r.ID = reservation.NewID()
		}
		if r.Color == "" {
			r.Color = reservation.DefaultColor
		}
		if r.Rect.Height == 0 {
			r.Rect.Top = b.layout.TopInset
			r.Rect.Height = b.layout.RowHeight
		}
		if r.RoomType == "" {
			if row, ok := b.row(r.RoomID); ok {
				r.RoomType = row.RoomType
			}
		}
		out[i] = reservation.Relayout(r, b.frame)
	}
	return out
}

func (b *Board) row(id string) (Row, bool) {
	for _, r := range b.rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

func (b *Board) rowReservations(rowID string) []reservation.Reservation {
	var out []reservation.Reservation
	for _, r := range b.reservations {
		if r.RoomID == rowID {
			out = append(out, r)
		}
	}
	return out
}

// applyRowUpdate merges the list emitted by one row into the canonical
// list. Exactly the reservations that were in the row's snapshot are
// replaced; new ids are appended.
func (b *Board) applyRowUpdate(rowID string, list []reservation.Reservation) {
	g := b.grids[rowID]
	before := make(map[string]bool)
	for _, r := range g.Reservations() {
		before[r.ID] = true
	}
	emitted := make(map[string]reservation.Reservation, len(list))
	for _, r := range list {
		emitted[r.ID] = r
	}

	merged := make([]reservation.Reservation, 0, len(b.reservations)+len(list))
	var removed []string
	for _, r := range b.reservations {
		if !before[r.ID] {
			merged = append(merged, r)
			continue
		}
		if n, ok := emitted[r.ID]; ok {
			merged = append(merged, n)
			continue
		}
		removed = append(removed, r.ID)
	}
	for _, r := range list {
		if !before[r.ID] {
			merged = append(merged, r)
		}
	}

	b.reservations = merged
	b.redistribute()
	b.touch()

	b.pending = append(b.pending, queue.ReservationsCommitted{
		BoardID:      b.ID,
		RoomID:       rowID,
		Action:       b.action,
		Reservations: payloads(list),
		Removed:      removed,
		CommittedAt:  b.now(),
	})
}

// redistribute pushes the canonical list back into every row and keeps
// keyboard focus on a reservation that changed rows.
func (b *Board) redistribute() {
	focused := ""
	if g, ok := b.grids[b.focusRow]; ok {
		focused = g.Focused()
	}
	for id, g := range b.grids {
		g.SetReservations(b.rowReservations(id))
	}
	if focused != "" {
		b.focus(focused)
	}
}

func (b *Board) focus(id string) bool {
	r, ok := reservation.Find(b.reservations, id)
	if !ok {
		return false
	}
	g, ok := b.grids[r.RoomID]
	if !ok {
		return false
	}
	for _, other := range b.grids {
		other.Blur()
	}
	b.focusRow = r.RoomID
	return g.Focus(id)
}

func (b *Board) selectReservation(rowID string, r reservation.Reservation) {
	for id, g := range b.grids {
		if id != rowID {
			g.Blur()
		}
	}
	b.focusRow = rowID
	b.opened = &r
}

func (b *Board) activeGrid() *grid.Grid {
	if b.active == "" {
		return nil
	}
	return b.grids[b.active]
}

func (b *Board) pointer(in PointerInput) error {
	ev := grid.PointerEvent{
		X:      in.X,
		Y:      in.Y,
		Button: in.Button,
		Hit:    in.Hit,
		Target: grid.Path(in.Path...),
	}

	switch in.Phase {
	case PhaseDown:
		// A second gesture cannot start while one is active.
		if b.active != "" {
			return nil
		}
		g, ok := b.grids[in.RowID]
		if !ok {
			return ErrUnknownRow
		}
		g.PointerDown(ev)
		if g.Busy() {
			b.active = in.RowID
		}

	case PhaseMove:
		if g := b.activeGrid(); g != nil {
			g.PointerMove(ev)
		}

	case PhaseUp:
		g := b.activeGrid()
		if g == nil {
			return nil
		}
		if s, ok := g.Session(); ok {
			b.action = actionFor(s.Mode)
		}
		if in.RowID == b.active {
			g.PointerUp(ev)
		} else {
			b.doc.Release(ev)
		}
		b.active = ""

	default:
		return ErrInvalidPhase
	}
	return nil
}

// key dispatches a key press and reports whether it was handled.
func (b *Board) key(k string) (bool, error) {
	switch k {
	case KeyZoomIn:
		return true, b.setFrameSize(calendar.ZoomIn(b.frame.Len()))
	case KeyZoomOut:
		return true, b.setFrameSize(calendar.ZoomOut(b.frame.Len()))
	case grid.KeyEscape:
		b.opened = nil
	}

	g, ok := b.grids[b.focusRow]
	if !ok {
		return false, nil
	}
	b.action = queue.ActionMove
	if k == grid.KeyDelete || k == grid.KeyBackspace {
		b.action = queue.ActionDelete
	}
	return g.KeyDown(k), nil
}

func (b *Board) setFrame(f calendar.Frame) error {
	if b.active != "" {
		return grid.ErrBusy
	}
	for _, g := range b.grids {
		if err := g.SetFrame(f); err != nil {
			return err
		}
	}
	b.frame = f
	b.reservations = reservation.RelayoutAll(b.reservations, f)
	b.redistribute()
	b.touch()
	return nil
}

func (b *Board) setFrameSize(size int) error {
	f, err := calendar.NewFrame(b.frame.First(), size)
	if err != nil {
		return err
	}
	if size == b.frame.Len() {
		return nil
	}
	return b.setFrame(f)
}

func (b *Board) navigate(dir Direction) error {
	var (
		f      calendar.Frame
		follow bool
		err    error
	)
	switch dir {
	case DirectionPrev:
		f = b.frame.Prev()
	case DirectionNext:
		f = b.frame.Next()
	case DirectionToday:
		f, err = calendar.NewFrame(b.now(), b.frame.Len())
		follow = true
	default:
		return ErrInvalidDirection
	}
	if err != nil {
		return err
	}
	if err := b.setFrame(f); err != nil {
		return err
	}
	b.followToday = follow
	return nil
}

// rollToToday moves a follow-today board to the current day. It reports
// whether the frame changed.
func (b *Board) rollToToday(now time.Time) bool {
	if !b.followToday || b.active != "" {
		return false
	}
	if b.frame.Len() > 0 && b.frame.First().Equal(calendar.Midnight(now)) {
		return false
	}
	f, err := calendar.NewFrame(now, b.frame.Len())
	if err != nil {
		return false
	}
	return b.setFrame(f) == nil
}

func (b *Board) save(req SaveRequest) error {
	if req.ID == "" {
		req.ID = reservation.NewID()
	}
	r, found := reservation.Find(b.reservations, req.ID)
	if !found {
		r = reservation.Reservation{
			ID:    req.ID,
			Color: reservation.DefaultColor,
			Rect:  reservation.Rect{Top: b.layout.TopInset, Height: b.layout.RowHeight},
		}
	}

	r.GuestName = req.GuestName
	r.StartDate = req.StartDate
	r.EndDate = req.EndDate
	if req.RoomID != "" {
		r.RoomID = req.RoomID
	}
	if req.RoomType != "" {
		r.RoomType = req.RoomType
	} else if row, ok := b.row(r.RoomID); ok {
		r.RoomType = row.RoomType
	}
	if req.Color != "" {
		r.Color = req.Color
	}
	r.Adults = req.Adults
	r.Children = req.Children
	r.Meals = req.Meals
	r.Amount = req.Amount
	r.PaymentStatus = req.PaymentStatus

	if err := reservation.Validate(r); err != nil {
		return err
	}
	if _, ok := b.row(r.RoomID); !ok {
		return ErrUnknownRow
	}

	r = reservation.Relayout(r, b.frame)
	if found {
		b.reservations = reservation.Replace(b.reservations, r)
	} else {
		b.reservations = reservation.Append(b.reservations, r)
	}
	b.opened = nil
	b.redistribute()
	b.touch()

	b.pending = append(b.pending, queue.ReservationsCommitted{
		BoardID:      b.ID,
		RoomID:       r.RoomID,
		Action:       queue.ActionSave,
		Reservations: payloads([]reservation.Reservation{r}),
		CommittedAt:  b.now(),
	})
	b.bus.Announce("Reservation for "+r.GuestName+" saved", announce.Polite)
	return nil
}

// drain returns and clears the events committed since the last call.
func (b *Board) drain() []queue.ReservationsCommitted {
	events := b.pending
	b.pending = nil
	return events
}

func (b *Board) touch() {
	b.UpdatedAt = b.now()
}

func actionFor(m grid.Mode) queue.Action {
	switch m {
	case grid.AreaSelecting:
		return queue.ActionCreate
	case grid.Resizing:
		return queue.ActionResize
	default:
		return queue.ActionMove
	}
}

func payloads(list []reservation.Reservation) []queue.ReservationPayload {
	out := make([]queue.ReservationPayload, len(list))
	for i, r := range list {
		out[i] = queue.ReservationPayload{
			ID:            r.ID,
			GuestName:     r.GuestName,
			RoomID:        r.RoomID,
			RoomType:      r.RoomType,
			StartDate:     r.StartDate,
			EndDate:       r.EndDate,
			PaymentStatus: string(r.PaymentStatus),
		}
	}
	return out
}
