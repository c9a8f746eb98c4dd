package http

import (
	"time"

	"github.com/nekogravitycat/room-timeline-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-timeline-backend/internal/room"
)

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
	Query      string `form:"q" binding:"omitempty,max=100"`
	CategoryID string `form:"category_id" binding:"omitempty,max=64"`
	Feature    string `form:"feature" binding:"omitempty,max=64"`
	Floor      string `form:"floor" binding:"omitempty,numeric"`
}

func (r *ListRoomsRequest) Filter() room.Filter {
	return room.Filter{
		Query:      r.Query,
		CategoryID: r.CategoryID,
		Feature:    r.Feature,
		Floor:      r.Floor,
	}
}

type RoomResponse struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	Name         string    `json:"name"`
	Label        string    `json:"label"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Features     []string  `json:"features"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	features := r.Features
	if features == nil {
		features = []string{}
	}
	return RoomResponse{
		ID:           r.ID,
		Number:       r.Number,
		Name:         r.Name,
		Label:        r.Label(),
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		Features:     features,
		Position:     r.Position,
		CreatedAt:    r.CreatedAt,
	}
}

type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

func NewCategoryResponse(c *room.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Position: c.Position}
}

type CreateRoomRequest struct {
	Number     string   `json:"number" binding:"required,max=32"`
	Name       string   `json:"name" binding:"omitempty,max=100"`
	CategoryID string   `json:"category_id" binding:"required"`
	Features   []string `json:"features" binding:"omitempty,dive,min=1,max=64"`
	Position   int      `json:"position" binding:"omitempty,min=0"`
}
