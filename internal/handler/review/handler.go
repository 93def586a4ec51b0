package review

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/middleware"
	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/service/review"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
	"github.com/Shefwef/ghuroo-api/pkg/httputil"
)

type Handler struct {
	service *review.Service
}

func NewHandler(service *review.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	reviews := r.Group("/reviews")
	{
		reviews.POST("", auth.Authenticate(), h.CreateReview)
		reviews.GET("/tour/:tour_id", h.ListTourReviews)
	}
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req model.CreateReviewRequest
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
	r := &model.Review{
		UserID:  userID,
		TourID:  tourID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.service.CreateReview(c.Request.Context(), r); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, r)
}

func (h *Handler) ListTourReviews(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("tour_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid tour ID", err))
		return
	}

	reviews, err := h.service.ListTourReviews(c.Request.Context(), tourID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reviews)
}
