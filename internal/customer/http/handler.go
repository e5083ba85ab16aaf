package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesaflow/booking-backend/internal/auth"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/customer"
	"github.com/mesaflow/booking-backend/internal/pkg/request"
	"github.com/mesaflow/booking-backend/internal/pkg/response"
)

type Handler struct {
	service    customer.Service
	bizService business.Service
}

func NewHandler(service customer.Service, bizService business.Service) *Handler {
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

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !h.checkMember(c, body.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this business"})
		return
	}

	cust, err := h.service.Create(c.Request.Context(), customer.CreateRequest{
		BusinessID: body.BusinessID,
		Name:       body.Name,
		Email:      body.Email,
		Phone:      body.Phone,
		Notes:      body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(cust))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkMember(c, cust.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this business"})
		return
	}

	c.JSON(http.StatusOK, NewResponse(cust))
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

	customers, total, err := h.service.List(c.Request.Context(), customer.Filter{
		BusinessID: req.BusinessID,
		Search:     req.Search,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		items[i] = NewResponse(cust)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkMember(c, cust.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this business"})
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), uri.ID, customer.UpdateRequest{
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
		Notes: body.Notes,
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

	cust, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkMember(c, cust.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not a member of this business"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
