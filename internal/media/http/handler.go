package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesaflow/booking-backend/internal/auth"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/media"
	"github.com/mesaflow/booking-backend/internal/pkg/request"
	"github.com/mesaflow/booking-backend/internal/pkg/response"
)

type Handler struct {
	service    media.Service
	bizService business.Service
}

func NewHandler(service media.Service, bizService business.Service) *Handler {
	return &Handler{
		service:    service,
		bizService: bizService,
	}
}

// checkManager checks if the caller manages the business.
func (h *Handler) checkManager(c *gin.Context, businessID string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}
	ok, err := h.bizService.IsManagerOrAbove(c.Request.Context(), businessID, userID)
	if err != nil {
		return false
	}
	return ok
}

// Upload accepts a multipart photo for a business.
func (h *Handler) Upload(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.checkManager(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can upload photos"})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'photo' form file", "details": err.Error()})
		return
	}

	var caption *string
	if v := c.PostForm("caption"); v != "" {
		caption = &v
	}

	p, err := h.service.Upload(c.Request.Context(), header, uri.ID, auth.GetUserID(c), caption)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(p))
}

// List returns the photos of a business.
func (h *Handler) List(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	photos, err := h.service.ListByBusiness(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = NewResponse(p)
	}

	c.JSON(http.StatusOK, gin.H{"photos": items})
}

// ServePhoto streams the photo content by ID.
func (h *Handler) ServePhoto(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo ID is required"})
		return
	}

	stream, p, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", p.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started; nothing sensible left to send.
		return
	}
}

// ServeThumbnail streams the photo thumbnail by ID.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo ID is required"})
		return
	}

	stream, p, err := h.service.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	// Thumbnails are always JPEG.
	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}

// Delete removes a photo and its blobs.
func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	p, err := h.service.Get(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkManager(c, p.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can delete photos"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
