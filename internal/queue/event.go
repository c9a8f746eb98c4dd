package queue

import "time"

// CommittedQueue is the queue that receives ReservationsCommitted events.
const CommittedQueue = "reservations.committed"

// Action names the gesture or operation that produced a commit.
type Action string

const (
	ActionCreate Action = "create"
	ActionMove   Action = "move"
	ActionResize Action = "resize"
	ActionDelete Action = "delete"
	ActionSave   Action = "save"
)

// ReservationPayload is the wire form of a reservation inside an event.
type ReservationPayload struct {
	ID            string    `json:"id"`
	GuestName     string    `json:"guest_name"`
	RoomID        string    `json:"room_id"`
	RoomType      string    `json:"room_type,omitempty"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	PaymentStatus string    `json:"payment_status,omitempty"`
}

// ReservationsCommitted is published after a board accepts a row update.
// Reservations holds the row's full replacement list; Removed lists ids
// that left the row in this commit.
type ReservationsCommitted struct {
	BoardID      string               `json:"board_id"`
	RoomID       string               `json:"room_id"`
	Action       Action               `json:"action"`
	Reservations []ReservationPayload `json:"reservations"`
	Removed      []string             `json:"removed,omitempty"`
	CommittedAt  time.Time            `json:"committed_at"`
}
