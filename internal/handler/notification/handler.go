package notification

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/middleware"
	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/service/notification"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
	"github.com/Shefwef/ghuroo-api/pkg/httputil"
)

type Handler struct {
	service notification.Servicer
}

func NewHandler(service notification.Servicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	notifications := r.Group("/notifications", auth.Authenticate())
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.PATCH("/read-all", h.MarkAllRead)
		notifications.DELETE("/:id", h.DeleteNotification)
		notifications.POST("", auth.RequireAdmin(), h.CreateNotification)
	}
}

func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.ContextUserID).(uuid.UUID)
}

func (h *Handler) ListNotifications(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("invalid limit", err))
			return
		}
		limit = parsed
	}

	notifications, err := h.service.List(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, notifications)
}

func (h *Handler) GetUnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"count": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid notification ID", err))
		return
	}

	// Only the recipient may mutate read-state.
	n, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if n.RecipientID != currentUserID(c) {
		httputil.RespondWithError(c, apperrors.Forbidden("not your notification"))
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"marked": true})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	count, err := h.service.MarkAllRead(c.Request.Context(), currentUserID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"marked_count": count})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid notification ID", err))
		return
	}

	n, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if n.RecipientID != currentUserID(c) {
		httputil.RespondWithError(c, apperrors.Forbidden("not your notification"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

// CreateNotification is the admin path for direct system notifications.
func (h *Handler) CreateNotification(c *gin.Context) {
	var req model.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid recipient ID", err))
		return
	}

	n := &model.Notification{
		RecipientID: recipientID,
		Title:       req.Title,
		Message:     req.Message,
		Type:        model.NotificationTypeSystem,
	}
	if err := h.service.Create(c.Request.Context(), n); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, n)
}
