package board

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/room-timeline-backend/internal/grid"
	"github.com/nekogravitycat/room-timeline-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "board not found")
	ErrReservationNotFound = apperror.New(http.StatusNotFound, "reservation not found")
	ErrUnknownRow          = apperror.New(http.StatusBadRequest, "row is not part of this board")
	ErrInvalidPhase        = apperror.New(http.StatusBadRequest, "pointer phase must be down, move or up")
	ErrInvalidDirection    = apperror.New(http.StatusBadRequest, "direction must be prev, next or today")
)

// Direction is a frame navigation step.
type Direction string

const (
	DirectionPrev  Direction = "prev"
	DirectionNext  Direction = "next"
	DirectionToday Direction = "today"
)

// Phase is the stage of a pointer event.
type Phase string

const (
	PhaseDown Phase = "down"
	PhaseMove Phase = "move"
	PhaseUp   Phase = "up"
)

// Board-level zoom keys.
const (
	KeyZoomIn  = "+"
	KeyZoomOut = "-"
)

// Row is one room on the board.
type Row struct {
	ID       string
	RoomType string
	Label    string
}

// PointerInput is a pointer event addressed to a board.
type PointerInput struct {
	Phase Phase
	// RowID is the row under the pointer; empty when the pointer is
	// outside every row.
	RowID  string
	X, Y   float64
	Button grid.Button
	Hit    grid.Hit
	// Path lists the elements under the pointer, innermost first.
	Path []grid.Element
}

// SaveRequest carries the reservation form.
type SaveRequest struct {
	ID            string
	GuestName     string
	StartDate     time.Time
	EndDate       time.Time
	RoomID        string
	RoomType      string
	Color         string
	Adults        *int
	Children      *int
	Meals         string
	Amount        *float64
	PaymentStatus reservation.PaymentStatus
}

// DayView is one header column.
type DayView struct {
	Date    time.Time
	Day     int
	Month   time.Month
	Year    int
	IsToday bool
}

// RowView is one row with the reservations visible in the frame.
type RowView struct {
	ID           string
	RoomType     string
	Label        string
	Reservations []reservation.Reservation
}

// InteractionView describes the gesture in progress.
type InteractionView struct {
	RowID       string
	Mode        string
	Selection   *reservation.Rect
	Reservation *reservation.Reservation
	Edge        string
	DropTarget  string
}

// Snapshot is the rendered state of a board.
type Snapshot struct {
	ID          string
	FrameStart  time.Time
	FrameSize   int
	ColumnWidth float64
	FollowToday bool
	Days        []DayView
	Rows        []RowView
	Interaction *InteractionView
	Focused     string
	Opened      *reservation.Reservation
	Polite      string
	Assertive   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
