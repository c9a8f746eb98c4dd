package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/room-timeline-backend/internal/announce"
	"github.com/nekogravitycat/room-timeline-backend/internal/calendar"
	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
)

var validRows = []Row{
	{ID: "101", RoomType: "standard"},
	{ID: "102", RoomType: "standard"},
	{ID: "103", RoomType: "standard"},
	{ID: "201", RoomType: "double"},
}

type harness struct {
	grid     *Grid
	doc      *Document
	bus      *announce.Bus
	updates  [][]reservation.Reservation
	selected []reservation.Reservation
}

func newHarness(t *testing.T, rowID string, size int, list ...reservation.Reservation) *harness {
	t.Helper()
	frame, err := calendar.NewFrame(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), size)
	require.NoError(t, err)

	h := &harness{doc: NewDocument(), bus: announce.NewBus()}
	h.grid = New(Config{
		RowID:        rowID,
		RoomType:     "standard",
		Frame:        frame,
		Reservations: list,
		ValidRows:    validRows,
		Listeners:    h.doc,
		Announcer:    h.bus,
		OnUpdate: func(l []reservation.Reservation) {
			h.updates = append(h.updates, l)
			h.grid.SetReservations(l)
		},
		OnSelect: func(r reservation.Reservation) {
			h.selected = append(h.selected, r)
		},
	})
	return h
}

func (h *harness) last() []reservation.Reservation {
	return h.updates[len(h.updates)-1]
}

func day(d, hour int) time.Time {
	return time.Date(2025, 4, d, hour, 0, 0, 0, time.UTC)
}

// stayA spans Apr 5 14:00 to Apr 8 11:00 in room 102 of a 14-day frame.
func stayA() reservation.Reservation {
	return reservation.Reservation{
		ID:        "A",
		GuestName: "Ada",
		StartDate: day(5, 14),
		EndDate:   day(8, 11),
		Rect:      reservation.Rect{Left: 4 * 72, Top: 5, Width: 3 * 72, Height: 34},
		RoomID:    "102",
		RoomType:  "standard",
	}
}

func primary(x float64, hit Hit) PointerEvent {
	return PointerEvent{X: x, Y: 10, Button: ButtonPrimary, Hit: hit}
}

func over(x float64, rowID string) PointerEvent {
	return PointerEvent{X: x, Y: 10, Target: Path(Element{}, Element{RowID: rowID})}
}

func TestAreaSelectionCreatesReservation(t *testing.T) {
	h := newHarness(t, "103", 21)

	h.grid.PointerDown(primary(100, Hit{Kind: HitBackground}))
	assert.Equal(t, AreaSelecting, h.grid.Mode())

	h.grid.PointerMove(PointerEvent{X: 300})
	s, ok := h.grid.Session()
	require.True(t, ok)
	assert.Equal(t, reservation.Rect{Left: 100, Top: 10, Width: 200, Height: 34}, s.Selection.Rect())

	h.grid.PointerUp(PointerEvent{X: 300})

	assert.Equal(t, Idle, h.grid.Mode())
	require.Len(t, h.updates, 1)
	require.Len(t, h.last(), 1)
	created := h.last()[0]
	assert.Equal(t, 100.0, created.Rect.Left)
	assert.Equal(t, 200.0, created.Rect.Width)
	assert.Equal(t, "103", created.RoomID)
	assert.Equal(t, day(3, 14), created.StartDate)
	assert.Equal(t, day(7, 11), created.EndDate)
}

func TestAreaSelectionRightToLeft(t *testing.T) {
	h := newHarness(t, "101", 14, stayA())

	h.grid.PointerDown(primary(700, Hit{Kind: HitBackground}))
	h.grid.PointerMove(PointerEvent{X: 600})
	h.grid.PointerUp(PointerEvent{})

	require.Len(t, h.updates, 1)
	list := h.last()
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].ID)
	assert.Equal(t, 600.0, list[1].Rect.Left)
	assert.Equal(t, 100.0, list[1].Rect.Width)
}

func TestAreaSelectionBelowThresholdIsAClick(t *testing.T) {
	tests := []struct {
		name string
		to   float64
	}{
		{"no movement", 100},
		{"exactly threshold", 110},
		{"backwards within threshold", 92},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "101", 14)
			h.grid.PointerDown(primary(100, Hit{Kind: HitBackground}))
			h.grid.PointerMove(PointerEvent{X: tt.to})
			h.grid.PointerUp(PointerEvent{})

			assert.Empty(t, h.updates)
			assert.Equal(t, Idle, h.grid.Mode())
		})
	}
}

func TestAreaSelectionJustAboveThreshold(t *testing.T) {
	h := newHarness(t, "101", 14)
	h.grid.PointerDown(primary(100, Hit{Kind: HitBackground}))
	h.grid.PointerMove(PointerEvent{X: 110.5})
	h.grid.PointerUp(PointerEvent{})

	require.Len(t, h.updates, 1)
	assert.Len(t, h.last(), 1)
}

func TestNonPrimaryButtonIgnored(t *testing.T) {
	h := newHarness(t, "101", 14)
	h.grid.PointerDown(PointerEvent{X: 100, Button: ButtonSecondary, Hit: Hit{Kind: HitBackground}})
	assert.Equal(t, Idle, h.grid.Mode())
	assert.Equal(t, 0, h.doc.Attached())
}

func TestReleaseListenerIsScopedToBusyStates(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())
	assert.Equal(t, 0, h.doc.Attached())

	h.grid.PointerDown(primary(300, Hit{Kind: HitBody, ReservationID: "A"}))
	assert.Equal(t, 1, h.doc.Attached())

	// A second press while busy does not start a new gesture.
	h.grid.PointerDown(primary(10, Hit{Kind: HitBackground}))
	assert.Equal(t, Dragging, h.grid.Mode())
	assert.Equal(t, 1, h.doc.Attached())

	h.grid.PointerMove(over(372, "102"))
	// Released outside the grid: only the page-level listener sees it.
	h.doc.Release(PointerEvent{X: -40})

	assert.Equal(t, Idle, h.grid.Mode())
	assert.Equal(t, 0, h.doc.Attached())
	assert.Len(t, h.updates, 1)

	// A late release does nothing.
	h.grid.PointerUp(PointerEvent{})
	assert.Len(t, h.updates, 1)
}

func TestDragAcrossDaysAndRows(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())

	// grab the block 12px inside its left edge
	h.grid.PointerDown(primary(300, Hit{Kind: HitBody, ReservationID: "A"}))
	s, _ := h.grid.Session()
	assert.Equal(t, 12.0, s.OffsetX)

	h.grid.PointerMove(over(340, "103"))
	s, _ = h.grid.Session()
	assert.Equal(t, 328.0, s.Reservation.Rect.Left)
	assert.Equal(t, "103", s.DropTarget)
	assert.Equal(t, "103", s.Reservation.RoomID)

	h.grid.PointerMove(over(450, "201"))
	h.grid.PointerUp(PointerEvent{})

	require.Len(t, h.updates, 1)
	moved := h.last()[0]
	// 438 - 288 = 150px, about two columns
	assert.Equal(t, 288.0+2*72, moved.Rect.Left)
	assert.Equal(t, day(7, 14), moved.StartDate)
	assert.Equal(t, day(10, 11), moved.EndDate)
	assert.Equal(t, "201", moved.RoomID)
	assert.Equal(t, "double", moved.RoomType)
	assert.Equal(t, 216.0, moved.Rect.Width)
}

func TestDragOntoUnknownRowKeepsLastValidRoom(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())

	h.grid.PointerDown(primary(300, Hit{Kind: HitBody, ReservationID: "A"}))
	h.grid.PointerMove(over(300, "999"))
	h.grid.PointerMove(PointerEvent{X: 380})
	h.grid.PointerUp(PointerEvent{})

	require.Len(t, h.updates, 1)
	assert.Equal(t, "102", h.last()[0].RoomID)

	h.grid.PointerDown(primary(300+72, Hit{Kind: HitBody, ReservationID: "A"}))
	h.grid.PointerMove(over(372, "103"))
	h.grid.PointerMove(over(372, "nope"))
	h.grid.PointerUp(PointerEvent{})

	require.Len(t, h.updates, 2)
	assert.Equal(t, "103", h.last()[0].RoomID)
}

func TestClickOnReservationOpensIt(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())

	h.grid.PointerDown(primary(300, Hit{Kind: HitBody, ReservationID: "A"}))
	h.grid.PointerUp(PointerEvent{X: 300})

	assert.Empty(t, h.updates)
	require.Len(t, h.selected, 1)
	assert.Equal(t, "A", h.selected[0].ID)
	assert.Equal(t, "A", h.grid.Focused())
}

func TestPointerDownOnUnknownReservationIgnored(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())
	h.grid.PointerDown(primary(300, Hit{Kind: HitBody, ReservationID: "ghost"}))
	assert.Equal(t, Idle, h.grid.Mode())
}

func TestResizeRightEdge(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())

	h.grid.PointerDown(primary(504, Hit{Kind: HitRightHandle, ReservationID: "A"}))
	assert.Equal(t, Resizing, h.grid.Mode())

	h.grid.PointerMove(PointerEvent{X: 504 + 2*72 + 10})
	h.grid.PointerUp(PointerEvent{})

	require.Len(t, h.updates, 1)
	r := h.last()[0]
	assert.Equal(t, day(5, 14), r.StartDate)
	assert.Equal(t, day(10, 11), r.EndDate)
	assert.Equal(t, 288.0, r.Rect.Left)
	assert.Equal(t, 5*72.0, r.Rect.Width)
}

func TestResizeLeftEdge(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())

	h.grid.PointerDown(primary(290, Hit{Kind: HitLeftHandle, ReservationID: "A"}))
	h.grid.PointerMove(PointerEvent{X: 290 - 72})
	h.grid.PointerUp(PointerEvent{})

	require.Len(t, h.updates, 1)
	r := h.last()[0]
	assert.Equal(t, day(4, 14), r.StartDate)
	assert.Equal(t, day(8, 11), r.EndDate)
	assert.Equal(t, 216.0, r.Rect.Left)
	assert.Equal(t, 4*72.0, r.Rect.Width)
}

func TestResizeCannotCrossOppositeEdge(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())

	h.grid.PointerDown(primary(290, Hit{Kind: HitLeftHandle, ReservationID: "A"}))
	h.grid.PointerMove(PointerEvent{X: 290 + 72})
	s, _ := h.grid.Session()
	assert.Equal(t, day(6, 14), s.Reservation.StartDate)

	// three days right would put the start after the 8th 11:00 check-out
	h.grid.PointerMove(PointerEvent{X: 290 + 3*72})
	s, _ = h.grid.Session()
	assert.Equal(t, day(6, 14), s.Reservation.StartDate, "rejected step keeps the last valid state")
	assert.Equal(t, day(8, 11), s.Reservation.EndDate)

	h.grid.PointerUp(PointerEvent{})
	require.Len(t, h.updates, 1)
	assert.Equal(t, day(6, 14), h.last()[0].StartDate)
}

func TestResizeInvertingFromStartLeavesDatesUnchanged(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())

	h.grid.PointerDown(primary(290, Hit{Kind: HitLeftHandle, ReservationID: "A"}))
	h.grid.PointerMove(PointerEvent{X: 290 + 3*72})
	h.grid.PointerUp(PointerEvent{})

	assert.Empty(t, h.updates)
	r, _ := reservation.Find(h.grid.Reservations(), "A")
	assert.Equal(t, day(5, 14), r.StartDate)
	assert.Equal(t, day(8, 11), r.EndDate)
}

func TestSetFrameRejectedWhileBusy(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())
	f, err := calendar.NewFrame(day(1, 0), 28)
	require.NoError(t, err)

	h.grid.PointerDown(primary(10, Hit{Kind: HitBackground}))
	assert.ErrorIs(t, h.grid.SetFrame(f), ErrBusy)

	h.grid.PointerUp(PointerEvent{})
	assert.NoError(t, h.grid.SetFrame(f))
	assert.Equal(t, 36.0, h.grid.Frame().ColumnWidth())
}

func TestCommitIsAnnounced(t *testing.T) {
	h := newHarness(t, "102", 14, stayA())

	h.grid.PointerDown(primary(300, Hit{Kind: HitBody, ReservationID: "A"}))
	h.grid.PointerMove(over(372, "103"))
	h.grid.PointerUp(PointerEvent{})

	msg, ok := h.bus.Last(announce.Polite)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "room 103")
}
