package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-timeline-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-timeline-backend/internal/pkg/response"
	"github.com/nekogravitycat/room-timeline-backend/internal/room"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	rooms, err := h.service.OrderedRooms(c.Request.Context(), req.Filter())
	if err != nil {
		response.Error(c, err)
		return
	}

	start, end := req.Window(len(rooms))
	items := make([]RoomResponse, 0, end-start)
	for _, r := range rooms[start:end] {
		items = append(items, NewRoomResponse(r))
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, len(rooms)))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByKeyRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	rm, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	rm, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		Number:     body.Number,
		Name:       body.Name,
		CategoryID: body.CategoryID,
		Features:   body.Features,
		Position:   body.Position,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRoomResponse(rm))
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		items[i] = NewCategoryResponse(cat)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
