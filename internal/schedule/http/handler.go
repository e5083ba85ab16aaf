package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesaflow/booking-backend/internal/auth"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/pkg/request"
	"github.com/mesaflow/booking-backend/internal/pkg/response"
	"github.com/mesaflow/booking-backend/internal/schedule"
)

type Handler struct {
	service    schedule.Service
	bizService business.Service
}

func NewHandler(service schedule.Service, bizService business.Service) *Handler {
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

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !h.checkManager(c, body.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can edit operating hours"})
		return
	}

	rule, err := h.service.Create(c.Request.Context(), schedule.CreateRequest{
		BusinessID:   body.BusinessID,
		DayOfWeek:    body.DayOfWeek,
		SpecificDate: body.SpecificDate,
		OpensAt:      body.OpensAt,
		ClosesAt:     body.ClosesAt,
		Closed:       body.Closed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(rule))
}

func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	rules, err := h.service.ListByBusiness(c.Request.Context(), req.BusinessID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RuleResponse, len(rules))
	for i, r := range rules {
		items[i] = NewResponse(r)
	}

	c.JSON(http.StatusOK, gin.H{"rules": items})
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rule, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkManager(c, rule.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can edit operating hours"})
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), uri.ID, schedule.UpdateRequest{
		OpensAt:  body.OpensAt,
		ClosesAt: body.ClosesAt,
		Closed:   body.Closed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rule, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkManager(c, rule.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can edit operating hours"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
