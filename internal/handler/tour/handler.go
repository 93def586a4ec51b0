package tour

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/middleware"
	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/service/tour"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
	"github.com/Shefwef/ghuroo-api/pkg/httputil"
)

type Handler struct {
	service *tour.Service
	cache   *middleware.CacheMiddleware
}

func NewHandler(service *tour.Service, cache *middleware.CacheMiddleware) *Handler {
	return &Handler{service: service, cache: cache}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	tours := r.Group("/tours")
	{
		tours.GET("", h.cache.Cache(), h.ListTours)
		tours.GET("/:id", h.cache.Cache(), h.GetTour)
		tours.POST("", auth.Authenticate(), auth.RequireAdmin(), h.CreateTour)
	}
}

func (h *Handler) ListTours(c *gin.Context) {
	tours, err := h.service.ListTours(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, tours)
}

func (h *Handler) GetTour(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid tour ID", err))
		return
	}

	t, err := h.service.GetTour(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, t)
}

func (h *Handler) CreateTour(c *gin.Context) {
	var req model.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	t := &model.Tour{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := h.service.CreateTour(c.Request.Context(), actorID, t); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.cache.Invalidate()
	httputil.RespondWithCreated(c, t)
}
