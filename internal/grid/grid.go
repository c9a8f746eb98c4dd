// Package grid implements the interaction engine of one room row:
// drawing new reservations, dragging and resizing existing ones, and
// moving them with the keyboard.
package grid

import (
	"fmt"
	"math"
	"net/http"

	"github.com/nekogravitycat/room-timeline-backend/internal/announce"
	"github.com/nekogravitycat/room-timeline-backend/internal/calendar"
	"github.com/nekogravitycat/room-timeline-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
)

var ErrBusy = apperror.New(http.StatusConflict, "an interaction is in progress")

type Mode int

const (
	Idle Mode = iota
	AreaSelecting
	Dragging
	Resizing
)

func (m Mode) String() string {
	switch m {
	case AreaSelecting:
		return "area_selecting"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

type Edge string

const (
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

// Selection is the rubber band drawn during an area selection.
type Selection struct {
	StartX, StartY float64
	CurrentX       float64
	Height         float64
}

// Width is the signed horizontal extent of the selection.
func (s Selection) Width() float64 { return s.CurrentX - s.StartX }

// Rect normalises the selection to a rectangle with a positive width.
func (s Selection) Rect() reservation.Rect {
	return reservation.Rect{
		Left:   math.Min(s.StartX, s.CurrentX),
		Top:    s.StartY,
		Width:  math.Abs(s.Width()),
		Height: s.Height,
	}
}

// Session is the transient state of one gesture.
type Session struct {
	Mode             Mode
	AnchorX, AnchorY float64
	CurrentX         float64

	// Area selection only.
	Selection Selection

	// Drag and resize only.
	Reservation reservation.Reservation
	Original    reservation.Reservation
	OffsetX     float64
	OffsetY     float64
	Edge        Edge
	DropTarget  string

	moved bool
}

// Config wires a Grid to its row and to its owner.
type Config struct {
	RowID        string
	RoomType     string
	Frame        calendar.Frame
	Reservations []reservation.Reservation
	// ValidRows lists every row in on-screen order.
	ValidRows []Row
	Layout    reservation.Layout
	Listeners Listeners
	Announcer announce.Announcer

	// OnUpdate receives the full replacement list of this row's
	// reservations each time a gesture or key commits.
	OnUpdate func([]reservation.Reservation)
	// OnSelect receives a reservation the user opened.
	OnSelect func(reservation.Reservation)
}

// Grid is the interaction state machine of one row. It is driven from a
// single goroutine; callers serialise events.
type Grid struct {
	rowID        string
	roomType     string
	frame        calendar.Frame
	reservations []reservation.Reservation
	rows         []Row
	layout       reservation.Layout
	listeners    Listeners
	announcer    announce.Announcer
	onUpdate     func([]reservation.Reservation)
	onSelect     func(reservation.Reservation)

	resolver *DropResolver
	session  *Session
	detach   func()
	focused  string
}

func New(cfg Config) *Grid {
	if cfg.Listeners == nil {
		cfg.Listeners = NewDocument()
	}
	if cfg.Announcer == nil {
		cfg.Announcer = announce.Nop{}
	}
	if cfg.Layout == (reservation.Layout{}) {
		cfg.Layout = reservation.DefaultLayout()
	}

	return &Grid{
		rowID:        cfg.RowID,
		roomType:     cfg.RoomType,
		frame:        cfg.Frame,
		reservations: reservation.Clone(cfg.Reservations),
		rows:         append([]Row(nil), cfg.ValidRows...),
		layout:       cfg.Layout,
		listeners:    cfg.Listeners,
		announcer:    cfg.Announcer,
		onUpdate:     cfg.OnUpdate,
		onSelect:     cfg.OnSelect,
		resolver:     NewDropResolver(cfg.ValidRows),
	}
}

func (g *Grid) RowID() string    { return g.rowID }
func (g *Grid) RoomType() string { return g.roomType }

// Row returns the row this grid renders.
func (g *Grid) Row() Row { return Row{ID: g.rowID, RoomType: g.roomType} }

// Mode returns the current interaction mode.
func (g *Grid) Mode() Mode {
	if g.session == nil {
		return Idle
	}
	return g.session.Mode
}

// Busy reports whether a gesture is in progress.
func (g *Grid) Busy() bool { return g.session != nil }

// Session returns a copy of the in-progress gesture, if any.
func (g *Grid) Session() (Session, bool) {
	if g.session == nil {
		return Session{}, false
	}
	return *g.session, true
}

// Reservations returns the current snapshot of the row.
func (g *Grid) Reservations() []reservation.Reservation {
	return reservation.Clone(g.reservations)
}

// SetReservations replaces the row snapshot, typically after the owner
// applied a committed update.
func (g *Grid) SetReservations(list []reservation.Reservation) {
	g.reservations = reservation.Clone(list)
	if g.focused != "" {
		if _, ok := reservation.Find(g.reservations, g.focused); !ok {
			g.focused = ""
		}
	}
}

// SetFrame swaps the visible frame. The frame is fixed for the duration
// of a gesture.
func (g *Grid) SetFrame(f calendar.Frame) error {
	if g.Busy() {
		return ErrBusy
	}
	g.frame = f
	return nil
}

// Frame returns the visible frame.
func (g *Grid) Frame() calendar.Frame { return g.frame }

// Focus marks the reservation the keyboard layer operates on.
func (g *Grid) Focus(id string) bool {
	if _, ok := reservation.Find(g.reservations, id); !ok {
		return false
	}
	g.focused = id
	return true
}

// Blur clears the keyboard focus.
func (g *Grid) Blur() { g.focused = "" }

// Focused returns the id of the focused reservation, or "".
func (g *Grid) Focused() string { return g.focused }

// PointerDown may start a gesture. It is ignored while another gesture
// is active and for non-primary buttons.
func (g *Grid) PointerDown(ev PointerEvent) {
	if g.session != nil || ev.Button != ButtonPrimary {
		return
	}

	s := &Session{AnchorX: ev.X, AnchorY: ev.Y, CurrentX: ev.X}

	switch ev.Hit.Kind {
	case HitBackground, "":
		s.Mode = AreaSelecting
		s.Selection = Selection{
			StartX:   ev.X,
			StartY:   ev.Y,
			CurrentX: ev.X,
			Height:   g.layout.RowHeight,
		}

	case HitBody:
		r, ok := reservation.Find(g.reservations, ev.Hit.ReservationID)
		if !ok {
			return
		}
		s.Mode = Dragging
		s.Reservation = r
		s.Original = r
		s.OffsetX = ev.X - r.Rect.Left
		s.OffsetY = ev.Y - r.Rect.Top
		s.DropTarget = r.RoomID
		g.resolver.Reset(Row{ID: r.RoomID, RoomType: r.RoomType})

	case HitLeftHandle, HitRightHandle:
		r, ok := reservation.Find(g.reservations, ev.Hit.ReservationID)
		if !ok {
			return
		}
		s.Mode = Resizing
		s.Reservation = r
		s.Original = r
		s.Edge = EdgeRight
		if ev.Hit.Kind == HitLeftHandle {
			s.Edge = EdgeLeft
		}

	default:
		return
	}

	g.enter(s)
}

// PointerMove updates the active gesture.
func (g *Grid) PointerMove(ev PointerEvent) {
	s := g.session
	if s == nil {
		return
	}
	s.CurrentX = ev.X
	if ev.X != s.AnchorX {
		s.moved = true
	}

	switch s.Mode {
	case AreaSelecting:
		s.Selection.CurrentX = ev.X
	case Dragging:
		g.drag(s, ev)
	case Resizing:
		g.resize(s, ev.X)
	}
}

// PointerUp ends the active gesture and commits its result when the
// gesture was valid. The grid is back in Idle before any callback runs.
func (g *Grid) PointerUp(PointerEvent) {
	s := g.session
	if s == nil {
		return
	}
	g.exit()

	switch s.Mode {
	case AreaSelecting:
		g.commitSelection(s)
	case Dragging:
		g.commitDrag(s)
	case Resizing:
		g.commitResize(s)
	}
}

// enter acquires the page-level release listener for the new busy state.
func (g *Grid) enter(s *Session) {
	g.session = s
	g.detach = g.listeners.OnRelease(g.PointerUp)
}

// exit is the only way back to Idle and always releases the listener.
func (g *Grid) exit() {
	if g.detach != nil {
		g.detach()
		g.detach = nil
	}
	g.session = nil
}

func (g *Grid) drag(s *Session, ev PointerEvent) {
	r := s.Reservation
	r.Rect.Left = ev.X - s.OffsetX

	if row, ok := g.resolver.Resolve(ev.Target); ok {
		if row.ID != s.Original.RoomID {
			s.moved = true
		}
		r.RoomID = row.ID
		r.RoomType = row.RoomType
		s.DropTarget = row.ID
	}

	days := g.columnsMoved(r.Rect.Left - s.Original.Rect.Left)
	r.StartDate = calendar.Shift(s.Original.StartDate, days)
	r.EndDate = calendar.Shift(s.Original.EndDate, days)
	s.Reservation = r
}

func (g *Grid) resize(s *Session, x float64) {
	days := g.columnsMoved(x - s.AnchorX)
	w := g.frame.ColumnWidth()
	orig := s.Original
	r := s.Reservation

	switch s.Edge {
	case EdgeLeft:
		start := calendar.Shift(orig.StartDate, days)
		if !start.Before(orig.EndDate) {
			return
		}
		r.StartDate = start
		r.Rect.Left = orig.Rect.Left + float64(days)*w
		r.Rect.Width = orig.Rect.Width - float64(days)*w
	case EdgeRight:
		end := calendar.Shift(orig.EndDate, days)
		if !end.After(orig.StartDate) {
			return
		}
		r.EndDate = end
		r.Rect.Width = orig.Rect.Width + float64(days)*w
	}
	s.Reservation = r
}

// columnsMoved converts a horizontal displacement into whole days.
func (g *Grid) columnsMoved(dx float64) int {
	w := g.frame.ColumnWidth()
	if w == 0 {
		return 0
	}
	return int(math.Round(dx / w))
}

func (g *Grid) commitSelection(s *Session) {
	sel := s.Selection.Rect()
	if sel.Width <= g.layout.MinSelectionWidth {
		return
	}

	created := reservation.NewFromSelection(sel.Left, sel.Width, g.frame, g.rowID, g.roomType, g.layout)
	g.emit(reservation.Append(g.reservations, created))
	g.announcer.Announce(fmt.Sprintf("New reservation created in room %s from %s to %s",
		g.rowID, formatDay(created.StartDate), formatDay(created.EndDate)), announce.Polite)
}

func (g *Grid) commitDrag(s *Session) {
	if !s.moved {
		g.open(s.Original)
		return
	}

	r := s.Reservation
	days := g.columnsMoved(r.Rect.Left - s.Original.Rect.Left)
	r.StartDate = calendar.Shift(s.Original.StartDate, days)
	r.EndDate = calendar.Shift(s.Original.EndDate, days)
	r.Rect.Left = s.Original.Rect.Left + float64(days)*g.frame.ColumnWidth()

	g.emit(reservation.Replace(g.reservations, r))
	g.announcer.Announce(fmt.Sprintf("Reservation for %s moved to room %s, %s to %s",
		r.GuestName, r.RoomID, formatDay(r.StartDate), formatDay(r.EndDate)), announce.Polite)
}

func (g *Grid) commitResize(s *Session) {
	r := s.Reservation
	if r.StartDate.Equal(s.Original.StartDate) && r.EndDate.Equal(s.Original.EndDate) {
		return
	}

	g.emit(reservation.Replace(g.reservations, r))
	g.announcer.Announce(fmt.Sprintf("Reservation for %s now runs %s to %s",
		r.GuestName, formatDay(r.StartDate), formatDay(r.EndDate)), announce.Polite)
}

// open focuses r and hands it to the owner for editing.
func (g *Grid) open(r reservation.Reservation) {
	g.focused = r.ID
	if g.onSelect != nil {
		g.onSelect(r)
	}
}

func (g *Grid) emit(list []reservation.Reservation) {
	if g.onUpdate != nil {
		g.onUpdate(list)
	}
}
