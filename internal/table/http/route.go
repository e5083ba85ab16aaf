package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers table and combination routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	tables := g.Group("/tables")

	// === Authenticated Routes ===
	tables.Use(authMiddleware)
	{
		tables.GET("", h.List)
		tables.POST("", h.Create)
		tables.GET("/:id", h.Get)
		tables.PATCH("/:id", h.Update)
		tables.DELETE("/:id", h.Delete)
	}

	combos := g.Group("/table-combinations")
	combos.Use(authMiddleware)
	{
		combos.GET("", h.ListCombinations)
		combos.POST("", h.CreateCombination)
		combos.DELETE("/:id", h.DeleteCombination)
	}
}
