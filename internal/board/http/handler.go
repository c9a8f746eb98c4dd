package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-timeline-backend/internal/board"
	"github.com/nekogravitycat/room-timeline-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-timeline-backend/internal/pkg/response"
)

type Handler struct {
	service board.Service
}

func NewHandler(service board.Service) *Handler {
	return &Handler{service: service}
}

// bindURI binds the board id path parameter.
func bindURI(c *gin.Context) (string, bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return "", false
	}
	return uri.ID, true
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBoardBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	req, err := body.toRequest()
	if err != nil {
		response.BadRequest(c, "invalid frame_start", err)
		return
	}

	snap, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBoardResponse(snap))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	snap, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBoardResponse(snap))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Pointer(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var body PointerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	snap, err := h.service.Pointer(c.Request.Context(), id, body.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBoardResponse(snap))
}

func (h *Handler) Key(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var body KeyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	snap, handled, err := h.service.Key(c.Request.Context(), id, body.Key)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, KeyResponse{Handled: handled, Board: NewBoardResponse(snap)})
}

func (h *Handler) Focus(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var body FocusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	snap, err := h.service.Focus(c.Request.Context(), id, body.ReservationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBoardResponse(snap))
}

func (h *Handler) Navigate(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var body NavigateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	snap, err := h.service.Navigate(c.Request.Context(), id, board.Direction(body.Direction))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBoardResponse(snap))
}

func (h *Handler) SetFrame(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var body FrameBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	snap, err := h.service.SetFrameSize(c.Request.Context(), id, body.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBoardResponse(snap))
}

func (h *Handler) SaveReservation(c *gin.Context) {
	var uri SaveURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body SaveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	snap, err := h.service.SaveReservation(c.Request.Context(), uri.ID, body.toRequest(uri.ReservationID))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBoardResponse(snap))
}
