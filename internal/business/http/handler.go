package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesaflow/booking-backend/internal/auth"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/pkg/request"
	"github.com/mesaflow/booking-backend/internal/pkg/response"
)

type Handler struct {
	service business.Service
}

func NewHandler(service business.Service) *Handler {
	return &Handler{service: service}
}

// checkManager checks if the caller is an owner or admin of the business.
func (h *Handler) checkManager(c *gin.Context, businessID string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}
	ok, err := h.service.IsManagerOrAbove(c.Request.Context(), businessID, userID)
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

	biz, err := h.service.Create(c.Request.Context(), business.CreateRequest{
		Name:        body.Name,
		Timezone:    body.Timezone,
		Locale:      body.Locale,
		MaxCapacity: body.MaxCapacity,
		OwnerUserID: auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(biz))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	biz, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(biz))
}

func (h *Handler) List(c *gin.Context) {
	var page request.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	businesses, total, err := h.service.List(c.Request.Context(), business.Filter{
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BusinessResponse, len(businesses))
	for i, b := range businesses {
		items[i] = NewResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page.Page, page.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.checkManager(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can update settings"})
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	biz, err := h.service.Update(c.Request.Context(), uri.ID, business.UpdateRequest{
		Name:          body.Name,
		Timezone:      body.Timezone,
		Locale:        body.Locale,
		MaxCapacity:   body.MaxCapacity,
		ZoneFillOrder: body.ZoneFillOrder,
		IsActive:      body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(biz))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	// Only the owner may deactivate a business.
	userID := auth.GetUserID(c)
	member, err := h.service.GetMember(c.Request.Context(), req.ID, userID)
	if err != nil || member.Role != business.RoleOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only the owner can delete a business"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) AddMember(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.checkManager(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can add members"})
		return
	}

	var body AddMemberRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.AddMember(c.Request.Context(), uri.ID, body.UserID, body.Role); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) RemoveMember(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.checkManager(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can remove members"})
		return
	}

	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), uri.ID, userID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListMembers(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.checkManager(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only business managers can list members"})
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]MemberResponse, len(members))
	for i, m := range members {
		items[i] = NewMemberResponse(m)
	}

	c.JSON(http.StatusOK, gin.H{"members": items})
}
