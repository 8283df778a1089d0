package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roomreserve/internal/domain"
	"roomreserve/internal/modules/availability"
	"roomreserve/internal/modules/notify"
	"roomreserve/internal/pkg/response"
)

type Handler struct {
	service *Service
	notify  *notify.Service
}

func NewHandler(service *Service, notify *notify.Service) *Handler {
	return &Handler{service: service, notify: notify}
}

// RegisterRoutes expects the group to run OptionalAuth so a bearer token, if
// present, yields user_id in the context.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Reserve)
	rg.GET("/reservations", h.ListMine)
	rg.GET("/reservations/:id/confirmation", h.Confirmation)
}

func (h *Handler) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	// Exactly one channel identity per reservation: a logged-in session wins
	// over a LIFF-carried LINE id.
	var identity domain.Identity
	if userID := c.GetInt64("user_id"); userID != 0 {
		identity = domain.WebIdentity(userID)
	} else if req.LineUserID != "" {
		identity = domain.ChatIdentity(req.LineUserID)
	}

	r, err := h.service.Reserve(c.Request.Context(), ReserveInput{
		RoomID:    req.RoomID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Name:      req.Name,
		Identity:  identity,
	})
	if err != nil {
		h.writeReserveError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": r})
}

func (h *Handler) writeReserveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrIdentityRequired):
		response.Error(c, http.StatusBadRequest, "IDENTITY_REQUIRED",
			"Either LINE user ID or app user ID must be provided")
	case errors.Is(err, availability.ErrStartNotBeforeEnd):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"The start time must be earlier than the end time. Please correct the timings.")
	case errors.Is(err, availability.ErrTooLong):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Reservations cannot exceed 5 hours. Please select a shorter time frame.")
	case errors.Is(err, availability.ErrBadTime), errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation fields")
	case errors.Is(err, ErrNotAvailable), errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "RESERVATION_CONFLICT",
			"The selected time slot is booked. Please choose another.")
	case errors.Is(err, ErrStore):
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", err.Error())
	default:
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create reservation")
	}
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load reservations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": items})
}

func (h *Handler) Confirmation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation ID")
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
			return
		}
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load reservation")
		return
	}

	page := h.notify.ConfirmationPage(c.Request.Context(), r)
	response.Success(c, http.StatusOK, gin.H{"confirmation": page})
}
