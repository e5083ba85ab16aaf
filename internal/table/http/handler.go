package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesaflow/booking-backend/internal/auth"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/pkg/request"
	"github.com/mesaflow/booking-backend/internal/pkg/response"
	"github.com/mesaflow/booking-backend/internal/table"
)

type Handler struct {
	service    table.Service
	bizService business.Service
}

func NewHandler(service table.Service, bizService business.Service) *Handler {
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
	var body CreateTableRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !h.checkManager(c, body.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can edit tables"})
		return
	}

	t, err := h.service.Create(c.Request.Context(), table.CreateRequest{
		BusinessID:  body.BusinessID,
		Name:        body.Name,
		Capacity:    body.Capacity,
		MinCapacity: body.MinCapacity,
		Zone:        body.Zone,
		Priority:    body.Priority,
		AutoAssign:  body.AutoAssign,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTableResponse(t))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTableResponse(t))
}

func (h *Handler) List(c *gin.Context) {
	var req ListTablesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	tables, total, err := h.service.List(c.Request.Context(), table.Filter{
		BusinessID: req.BusinessID,
		Zone:       req.Zone,
		OnlyActive: req.OnlyActive,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TableResponse, len(tables))
	for i, t := range tables {
		items[i] = NewTableResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkManager(c, t.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can edit tables"})
		return
	}

	var body UpdateTableRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), uri.ID, table.UpdateRequest{
		Name:        body.Name,
		Capacity:    body.Capacity,
		MinCapacity: body.MinCapacity,
		Zone:        body.Zone,
		Priority:    body.Priority,
		AutoAssign:  body.AutoAssign,
		IsActive:    body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTableResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkManager(c, t.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can edit tables"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateCombination(c *gin.Context) {
	var body CreateCombinationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !h.checkManager(c, body.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can edit tables"})
		return
	}

	combo, err := h.service.CreateCombination(c.Request.Context(), table.CreateCombinationRequest{
		BusinessID:  body.BusinessID,
		Name:        body.Name,
		TableIDs:    body.TableIDs,
		MinCapacity: body.MinCapacity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCombinationResponse(combo))
}

func (h *Handler) ListCombinations(c *gin.Context) {
	var req ListCombinationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	combos, err := h.service.ListCombinations(c.Request.Context(), req.BusinessID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CombinationResponse, len(combos))
	for i, combo := range combos {
		items[i] = NewCombinationResponse(combo)
	}

	c.JSON(http.StatusOK, gin.H{"combinations": items})
}

func (h *Handler) DeleteCombination(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	combo, err := h.service.GetCombination(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.checkManager(c, combo.BusinessID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can edit tables"})
		return
	}

	if err := h.service.DeleteCombination(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
