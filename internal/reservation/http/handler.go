package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesaflow/booking-backend/internal/availability"
	"github.com/mesaflow/booking-backend/internal/pkg/request"
	"github.com/mesaflow/booking-backend/internal/pkg/response"
	"github.com/mesaflow/booking-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

// CheckAvailability answers whether a slot is open for a business.
func (h *Handler) CheckAvailability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var query AvailabilityRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	res, err := h.service.CheckAvailability(c.Request.Context(), availability.CheckRequest{
		BusinessID:      uri.ID,
		Date:            query.Date,
		Time:            query.Time,
		DurationMinutes: query.DurationMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(res))
}

// Create attempts a reservation. A full slot returns 409 with alternative
// times; success returns 201 with the confirmation code.
func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	outcome, err := h.service.Create(c.Request.Context(), reservation.CreateRequest{
		BusinessID:      body.BusinessID,
		CustomerID:      body.CustomerID,
		Date:            body.Date,
		Time:            body.Time,
		PartySize:       body.PartySize,
		DurationMinutes: body.DurationMinutes,
		PreferredZone:   body.PreferredZone,
		Notes:           body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if !outcome.Created {
		status = http.StatusConflict
	}
	c.JSON(status, NewCreateResponse(outcome))
}

// GetByCode looks up a reservation by its confirmation code.
func (h *Handler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation code is required"})
		return
	}

	b, err := h.service.GetByCode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(b))
}

// CancelByCode cancels a reservation by its confirmation code.
func (h *Handler) CancelByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation code is required"})
		return
	}

	b, err := h.service.CancelByCode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(b))
}
