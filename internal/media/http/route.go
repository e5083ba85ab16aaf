package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers photo routes. Serving is public; uploading and
// deleting require a business manager.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	photos := g.Group("/photos")
	{
		photos.GET("/:id", h.ServePhoto)
		photos.GET("/:id/thumbnail", h.ServeThumbnail)
		photos.DELETE("/:id", authMiddleware, h.Delete)
	}

	business := g.Group("/businesses/:id/photos")
	{
		business.GET("", h.List)
		business.POST("", authMiddleware, h.Upload)
	}
}
