package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the public reservation surface. None of these
// require authentication: customers book without accounts.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/businesses/:id/availability", h.CheckAvailability)

	reservations := g.Group("/reservations")
	{
		reservations.POST("", h.Create)
		reservations.GET("/:code", h.GetByCode)
		reservations.DELETE("/:code", h.CancelByCode)
	}
}
