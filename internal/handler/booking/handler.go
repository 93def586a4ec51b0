package booking

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/middleware"
	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/service/booking"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
	"github.com/Shefwef/ghuroo-api/pkg/httputil"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	bookings := r.Group("/bookings", auth.Authenticate())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.PATCH("/:id/status", auth.RequireAdmin(), h.UpdateStatus)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid tour ID", err))
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	b := &model.Booking{
		UserID:      userID,
		TourID:      tourID,
		Persons:     req.Persons,
		BookingDate: req.BookingDate,
	}
	if err := h.service.CreateBooking(c.Request.Context(), b); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, b)
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, bookings)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid booking ID", err))
		return
	}

	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, b)
}
