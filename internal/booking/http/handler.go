package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mesaflow/booking-backend/internal/auth"
	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/pkg/request"
	"github.com/mesaflow/booking-backend/internal/pkg/response"
)

type Handler struct {
	service    booking.Service
	bizService business.Service
}

func NewHandler(service booking.Service, bizService business.Service) *Handler {
	return &Handler{
		service:    service,
		bizService: bizService,
	}
}

// checkMember checks if the caller belongs to the business.
func (h *Handler) checkMember(c *gin.Context, businessID string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}
	ok, err := h.bizService.IsMember(c.Request.Context(), businessID, userID)
	if err != nil {
		return false
	}
	return ok
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkMember(c, b.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this business"})
		return
	}

	c.JSON(http.StatusOK, NewResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if !h.checkMember(c, req.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this business"})
		return
	}

	filter := booking.Filter{
		BusinessID: req.BusinessID,
		CustomerID: req.CustomerID,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	if req.From != "" {
		from, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' timestamp, expected RFC3339"})
			return
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' timestamp, expected RFC3339"})
			return
		}
		filter.To = &to
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Transition(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body TransitionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkMember(c, b.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this business"})
		return
	}

	var updated *booking.Booking
	switch body.Status {
	case booking.StatusConfirmed:
		updated, err = h.service.Confirm(c.Request.Context(), uri.ID)
	case booking.StatusCompleted:
		updated, err = h.service.Complete(c.Request.Context(), uri.ID)
	case booking.StatusCancelled:
		updated, err = h.service.Cancel(c.Request.Context(), uri.ID)
	case booking.StatusNoShow:
		updated, err = h.service.MarkNoShow(c.Request.Context(), uri.ID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target status"})
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(updated))
}
