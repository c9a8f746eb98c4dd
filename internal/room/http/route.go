package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room catalog routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/rooms")
	{
		group.GET("", h.List)    // List rooms in display order
		group.GET("/:id", h.Get) // Get room details
		group.POST("", h.Create) // Create room
	}

	g.GET("/room-categories", h.ListCategories)
}
