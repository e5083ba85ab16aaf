package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers business management routes. Listing every tenant
// on the platform is reserved for system admins.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, sysAdminMiddleware gin.HandlerFunc) {
	group := g.Group("/businesses")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", sysAdminMiddleware, h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)

		group.GET("/:id/members", h.ListMembers)
		group.POST("/:id/members", h.AddMember)
		group.DELETE("/:id/members/:userId", h.RemoveMember)
	}
}
