package reservation

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/room-timeline-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "reservation not found")
	ErrGuestNameRequired = apperror.New(http.StatusBadRequest, "guest name is required")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "end date must be after start date")
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPaid    PaymentStatus = "Paid"
)

const (
	DefaultGuestName = "New Reservation"
	DefaultColor     = "bg-[#8bdd6b]"
	idPrefix         = "res-"
)

// Rect is a reservation's on-screen rectangle, in pixels relative to its row.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Reservation is one stay of a guest in a room.
// Rect is a cached projection of StartDate, EndDate and the row; every
// mutation of the dates updates it in the same step.
type Reservation struct {
	ID        string
	GuestName string
	StartDate time.Time
	EndDate   time.Time
	Color     string
	Rect      Rect
	RoomID    string
	RoomType  string

	// Metadata passed through untouched by the grid.
	Adults        *int
	Children      *int
	Meals         string
	Amount        *float64
	PaymentStatus PaymentStatus
}

// NewID returns an identifier for a reservation created on the grid.
func NewID() string {
	return idPrefix + uuid.NewString()
}

// Validate checks the fields an editor must fill before saving.
func Validate(r Reservation) error {
	if strings.TrimSpace(r.GuestName) == "" {
		return ErrGuestNameRequired
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() || !r.EndDate.After(r.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}
