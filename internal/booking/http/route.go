package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers staff-facing booking routes. Public reservation
// creation lives under /reservations.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PATCH("/:id/status", h.Transition)
	}
}
