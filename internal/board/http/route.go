package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers board routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/boards")
	{
		group.POST("", h.Create)                                          // Open a board
		group.GET("/:id", h.Get)                                          // Current board state
		group.DELETE("/:id", h.Delete)                                    // Close a board
		group.POST("/:id/pointer", h.Pointer)                             // Pointer event
		group.POST("/:id/keys", h.Key)                                    // Key press
		group.POST("/:id/focus", h.Focus)                                 // Focus a reservation
		group.POST("/:id/navigate", h.Navigate)                           // Previous / next / today
		group.PUT("/:id/frame", h.SetFrame)                               // Change frame size
		group.PUT("/:id/reservations/:reservation_id", h.SaveReservation) // Save the reservation form
	}
}
