package board

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nekogravitycat/room-timeline-backend/internal/calendar"
	"github.com/nekogravitycat/room-timeline-backend/internal/queue"
	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
	"github.com/nekogravitycat/room-timeline-backend/internal/room"
)

// RoomLister provides the rows of a board in display order.
type RoomLister interface {
	OrderedRooms(ctx context.Context, filter room.Filter) ([]*room.Room, error)
}

type CreateRequest struct {
	// FrameStart is the first visible day; nil follows today.
	FrameStart   *time.Time
	FrameSize    int
	Filter       room.Filter
	Reservations []reservation.Reservation
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Snapshot, error)
	Get(ctx context.Context, id string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
	Pointer(ctx context.Context, id string, in PointerInput) (*Snapshot, error)
	// Key reports whether the key was bound.
	Key(ctx context.Context, id string, key string) (*Snapshot, bool, error)
	Focus(ctx context.Context, id string, reservationID string) (*Snapshot, error)
	Navigate(ctx context.Context, id string, dir Direction) (*Snapshot, error)
	SetFrameSize(ctx context.Context, id string, size int) (*Snapshot, error)
	SaveReservation(ctx context.Context, id string, req SaveRequest) (*Snapshot, error)
	// RollToToday moves every follow-today board whose first day is no
	// longer today and returns how many moved.
	RollToToday(ctx context.Context) int
}

type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithLayout sets the grid geometry used for new boards. A zero layout
// keeps the default.
func WithLayout(l reservation.Layout) Option {
	return func(s *service) {
		if l != (reservation.Layout{}) {
			s.layout = l
		}
	}
}

type service struct {
	mu        sync.RWMutex
	boards    map[string]*Board
	rooms     RoomLister
	publisher queue.Publisher
	layout    reservation.Layout
	now       func() time.Time
}

func NewService(rooms RoomLister, publisher queue.Publisher, opts ...Option) Service {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	s := &service{
		boards:    make(map[string]*Board),
		rooms:     rooms,
		publisher: publisher,
		layout:    reservation.DefaultLayout(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Snapshot, error) {
	size := req.FrameSize
	if size == 0 {
		size = calendar.FrameFourWeeks
	}

	start, follow := s.now(), true
	if req.FrameStart != nil {
		start, follow = *req.FrameStart, false
	}
	frame, err := calendar.NewFrame(start, size)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.OrderedRooms(ctx, req.Filter)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(rooms))
	for i, rm := range rooms {
		rows[i] = Row{ID: rm.ID, RoomType: rm.CategoryID, Label: rm.Label()}
	}

	b := newBoard(boardConfig{
		ID:           uuid.NewString(),
		Frame:        frame,
		FollowToday:  follow,
		Rows:         rows,
		Reservations: req.Reservations,
		Layout:       s.layout,
		Now:          s.now,
	})

	s.mu.Lock()
	s.boards[b.ID] = b
	s.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot(), nil
}

func (s *service) lookup(id string) (*Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// do runs fn with the board locked, then publishes whatever fn committed.
func (s *service) do(ctx context.Context, id string, fn func(b *Board) error) (*Snapshot, error) {
	b, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	fnErr := fn(b)
	snap := b.snapshot()
	events := b.drain()
	b.mu.Unlock()

	s.publish(ctx, events)
	if fnErr != nil {
		return nil, fnErr
	}
	return snap, nil
}

func (s *service) publish(ctx context.Context, events []queue.ReservationsCommitted) {
	for _, ev := range events {
		if err := s.publisher.PublishCommitted(ctx, ev); err != nil {
			log.Printf("board %s: publish %s failed: %v", ev.BoardID, ev.Action, err)
		}
	}
}

func (s *service) Get(ctx context.Context, id string) (*Snapshot, error) {
	return s.do(ctx, id, func(*Board) error { return nil })
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[id]; !ok {
		return ErrNotFound
	}
	delete(s.boards, id)
	return nil
}

func (s *service) Pointer(ctx context.Context, id string, in PointerInput) (*Snapshot, error) {
	return s.do(ctx, id, func(b *Board) error { return b.pointer(in) })
}

func (s *service) Key(ctx context.Context, id string, key string) (*Snapshot, bool, error) {
	var handled bool
	snap, err := s.do(ctx, id, func(b *Board) error {
		var err error
		handled, err = b.key(key)
		return err
	})
	return snap, handled, err
}

func (s *service) Focus(ctx context.Context, id string, reservationID string) (*Snapshot, error) {
	return s.do(ctx, id, func(b *Board) error {
		if !b.focus(reservationID) {
			return ErrReservationNotFound
		}
		return nil
	})
}

func (s *service) Navigate(ctx context.Context, id string, dir Direction) (*Snapshot, error) {
	return s.do(ctx, id, func(b *Board) error { return b.navigate(dir) })
}

func (s *service) SetFrameSize(ctx context.Context, id string, size int) (*Snapshot, error) {
	return s.do(ctx, id, func(b *Board) error { return b.setFrameSize(size) })
}

func (s *service) SaveReservation(ctx context.Context, id string, req SaveRequest) (*Snapshot, error) {
	return s.do(ctx, id, func(b *Board) error { return b.save(req) })
}

func (s *service) RollToToday(ctx context.Context) int {
	s.mu.RLock()
	boards := make([]*Board, 0, len(s.boards))
	for _, b := range s.boards {
		boards = append(boards, b)
	}
	s.mu.RUnlock()

	now := s.now()
	rolled := 0
	for _, b := range boards {
		b.mu.Lock()
		if b.rollToToday(now) {
			rolled++
		}
		b.mu.Unlock()
	}
	return rolled
}
