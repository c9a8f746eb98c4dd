package http

import (
	"time"

	"github.com/nekogravitycat/room-timeline-backend/internal/board"
	"github.com/nekogravitycat/room-timeline-backend/internal/grid"
	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
	"github.com/nekogravitycat/room-timeline-backend/internal/room"
)

const dateLayout = "2006-01-02"

type ReservationBody struct {
	ID            string    `json:"id"`
	GuestName     string    `json:"guest_name" binding:"required"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required,gtfield=StartDate"`
	RoomID        string    `json:"room_id" binding:"required"`
	RoomType      string    `json:"room_type"`
	Color         string    `json:"color"`
	Adults        *int      `json:"adults" binding:"omitempty,min=0"`
	Children      *int      `json:"children" binding:"omitempty,min=0"`
	Meals         string    `json:"meals"`
	Amount        *float64  `json:"amount" binding:"omitempty,min=0"`
	PaymentStatus string    `json:"payment_status" binding:"omitempty,oneof=Pending Partial Paid"`
}

func (b ReservationBody) toDomain() reservation.Reservation {
	return reservation.Reservation{
		ID:            b.ID,
		GuestName:     b.GuestName,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		RoomID:        b.RoomID,
		RoomType:      b.RoomType,
		Color:         b.Color,
		Adults:        b.Adults,
		Children:      b.Children,
		Meals:         b.Meals,
		Amount:        b.Amount,
		PaymentStatus: reservation.PaymentStatus(b.PaymentStatus),
	}
}

type CreateBoardBody struct {
	// FrameStart is a calendar date (2006-01-02); omit it to follow today.
	FrameStart   string            `json:"frame_start" binding:"omitempty,datetime=2006-01-02"`
	FrameSize    int               `json:"frame_size" binding:"omitempty,oneof=14 21 28"`
	Query        string            `json:"q" binding:"omitempty,max=100"`
	CategoryID   string            `json:"category_id"`
	Feature      string            `json:"feature"`
	Floor        string            `json:"floor" binding:"omitempty,numeric"`
	Reservations []ReservationBody `json:"reservations" binding:"omitempty,dive"`
}

func (b CreateBoardBody) toRequest() (board.CreateRequest, error) {
	req := board.CreateRequest{
		FrameSize: b.FrameSize,
		Filter: room.Filter{
			Query:      b.Query,
			CategoryID: b.CategoryID,
			Feature:    b.Feature,
			Floor:      b.Floor,
		},
	}
	if b.FrameStart != "" {
		start, err := time.ParseInLocation(dateLayout, b.FrameStart, time.Local)
		if err != nil {
			return req, err
		}
		req.FrameStart = &start
	}
	for _, r := range b.Reservations {
		req.Reservations = append(req.Reservations, r.toDomain())
	}
	return req, nil
}

type ElementBody struct {
	RowID    string `json:"row_id"`
	RoomType string `json:"room_type"`
}

type HitBody struct {
	Kind          string `json:"kind" binding:"omitempty,oneof=background body left_handle right_handle"`
	ReservationID string `json:"reservation_id"`
}

type PointerBody struct {
	Phase  string        `json:"phase" binding:"required,oneof=down move up"`
	RowID  string        `json:"row_id"`
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
	Button int           `json:"button" binding:"omitempty,min=0,max=4"`
	Hit    HitBody       `json:"hit"`
	Path   []ElementBody `json:"path"`
}

func (b PointerBody) toInput() board.PointerInput {
	in := board.PointerInput{
		Phase:  board.Phase(b.Phase),
		RowID:  b.RowID,
		X:      b.X,
		Y:      b.Y,
		Button: grid.Button(b.Button),
		Hit:    grid.Hit{Kind: grid.HitKind(b.Hit.Kind), ReservationID: b.Hit.ReservationID},
	}
	for _, el := range b.Path {
		in.Path = append(in.Path, grid.Element{RowID: el.RowID, RoomType: el.RoomType})
	}
	return in
}

type KeyBody struct {
	Key string `json:"key" binding:"required"`
}

type FocusBody struct {
	ReservationID string `json:"reservation_id" binding:"required"`
}

type NavigateBody struct {
	Direction string `json:"direction" binding:"required,oneof=prev next today"`
}

type FrameBody struct {
	Size int `json:"size" binding:"required"`
}

type SaveURI struct {
	ID            string `uri:"id" binding:"required,uuid"`
	ReservationID string `uri:"reservation_id" binding:"required,max=128"`
}

// SaveBody is the reservation form. Guest name and dates are checked by
// the board so the form gets domain error messages.
type SaveBody struct {
	GuestName     string    `json:"guest_name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	RoomID        string    `json:"room_id"`
	RoomType      string    `json:"room_type"`
	Color         string    `json:"color"`
	Adults        *int      `json:"adults" binding:"omitempty,min=0"`
	Children      *int      `json:"children" binding:"omitempty,min=0"`
	Meals         string    `json:"meals"`
	Amount        *float64  `json:"amount" binding:"omitempty,min=0"`
	PaymentStatus string    `json:"payment_status" binding:"omitempty,oneof=Pending Partial Paid"`
}

func (b SaveBody) toRequest(id string) board.SaveRequest {
	return board.SaveRequest{
		ID:            id,
		GuestName:     b.GuestName,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		RoomID:        b.RoomID,
		RoomType:      b.RoomType,
		Color:         b.Color,
		Adults:        b.Adults,
		Children:      b.Children,
		Meals:         b.Meals,
		Amount:        b.Amount,
		PaymentStatus: reservation.PaymentStatus(b.PaymentStatus),
	}
}

type RectResponse struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func newRect(r reservation.Rect) RectResponse {
	return RectResponse{Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height}
}

type ReservationResponse struct {
	ID            string       `json:"id"`
	GuestName     string       `json:"guest_name"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	Color         string       `json:"color"`
	Rect          RectResponse `json:"rect"`
	RoomID        string       `json:"room_id"`
	RoomType      string       `json:"room_type"`
	Adults        *int         `json:"adults,omitempty"`
	Children      *int         `json:"children,omitempty"`
	Meals         string       `json:"meals,omitempty"`
	Amount        *float64     `json:"amount,omitempty"`
	PaymentStatus string       `json:"payment_status,omitempty"`
}

func newReservation(r reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		GuestName:     r.GuestName,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Color:         r.Color,
		Rect:          newRect(r.Rect),
		RoomID:        r.RoomID,
		RoomType:      r.RoomType,
		Adults:        r.Adults,
		Children:      r.Children,
		Meals:         r.Meals,
		Amount:        r.Amount,
		PaymentStatus: string(r.PaymentStatus),
	}
}

type DayResponse struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	Month   int    `json:"month"`
	Year    int    `json:"year"`
	IsToday bool   `json:"is_today"`
}

type RowResponse struct {
	ID           string                `json:"id"`
	RoomType     string                `json:"room_type"`
	Label        string                `json:"label"`
	Reservations []ReservationResponse `json:"reservations"`
	// Attributes are the data attributes a row element carries so drop
	// targets can be resolved from the rendered surface.
	Attributes map[string]string `json:"attributes"`
}

type InteractionResponse struct {
	RowID       string               `json:"row_id"`
	Mode        string               `json:"mode"`
	Selection   *RectResponse        `json:"selection,omitempty"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
	Edge        string               `json:"edge,omitempty"`
	DropTarget  string               `json:"drop_target,omitempty"`
}

type AnnouncementsResponse struct {
	Polite    string `json:"polite"`
	Assertive string `json:"assertive"`
}

type BoardResponse struct {
	ID            string                `json:"id"`
	FrameStart    string                `json:"frame_start"`
	FrameSize     int                   `json:"frame_size"`
	ColumnWidth   float64               `json:"column_width"`
	FollowToday   bool                  `json:"follow_today"`
	Days          []DayResponse         `json:"days"`
	Rows          []RowResponse         `json:"rows"`
	Interaction   *InteractionResponse  `json:"interaction,omitempty"`
	Focused       string                `json:"focused,omitempty"`
	Opened        *ReservationResponse  `json:"opened,omitempty"`
	Announcements AnnouncementsResponse `json:"announcements"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func NewBoardResponse(s *board.Snapshot) BoardResponse {
	resp := BoardResponse{
		ID:          s.ID,
		FrameStart:  s.FrameStart.Format(dateLayout),
		FrameSize:   s.FrameSize,
		ColumnWidth: s.ColumnWidth,
		FollowToday: s.FollowToday,
		Days:        make([]DayResponse, 0, len(s.Days)),
		Rows:        make([]RowResponse, 0, len(s.Rows)),
		Focused:     s.Focused,
		Announcements: AnnouncementsResponse{
			Polite:    s.Polite,
			Assertive: s.Assertive,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	for _, d := range s.Days {
		resp.Days = append(resp.Days, DayResponse{
			Date:    d.Date.Format(dateLayout),
			Day:     d.Day,
			Month:   int(d.Month),
			Year:    d.Year,
			IsToday: d.IsToday,
		})
	}

	for _, row := range s.Rows {
		rr := RowResponse{
			ID:           row.ID,
			RoomType:     row.RoomType,
			Label:        row.Label,
			Reservations: make([]ReservationResponse, 0, len(row.Reservations)),
			Attributes:   grid.Row{ID: row.ID, RoomType: row.RoomType}.Attributes(),
		}
		for _, r := range row.Reservations {
			rr.Reservations = append(rr.Reservations, newReservation(r))
		}
		resp.Rows = append(resp.Rows, rr)
	}

	if in := s.Interaction; in != nil {
		ir := &InteractionResponse{
			RowID:      in.RowID,
			Mode:       in.Mode,
			Edge:       in.Edge,
			DropTarget: in.DropTarget,
		}
		if in.Selection != nil {
			rect := newRect(*in.Selection)
			ir.Selection = &rect
		}
		if in.Reservation != nil {
			r := newReservation(*in.Reservation)
			ir.Reservation = &r
		}
		resp.Interaction = ir
	}

	if s.Opened != nil {
		r := newReservation(*s.Opened)
		resp.Opened = &r
	}
	return resp
}

type KeyResponse struct {
	Handled bool          `json:"handled"`
	Board   BoardResponse `json:"board"`
}
