package blog

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/middleware"
	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/service/blog"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
	"github.com/Shefwef/ghuroo-api/pkg/httputil"
)

type Handler struct {
	service *blog.Service
}

func NewHandler(service *blog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	blogs := r.Group("/blogs")
	{
		blogs.GET("", h.ListBlogs)
		blogs.GET("/:id", h.GetBlog)
		blogs.POST("", auth.Authenticate(), h.CreateBlog)
		blogs.GET("/:id/comments", h.ListComments)
		blogs.POST("/:id/comments", auth.Authenticate(), h.CreateComment)
	}
}

func (h *Handler) ListBlogs(c *gin.Context) {
	blogs, err := h.service.ListBlogs(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, blogs)
}

func (h *Handler) GetBlog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid blog ID", err))
		return
	}

	b, err := h.service.GetBlog(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, b)
}

func (h *Handler) CreateBlog(c *gin.Context) {
	var req model.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	authorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	b := &model.Blog{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := h.service.CreateBlog(c.Request.Context(), b); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, b)
}

func (h *Handler) ListComments(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid blog ID", err))
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), blogID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, comments)
}

func (h *Handler) CreateComment(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid blog ID", err))
		return
	}

	var req model.CreateBlogCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	comment := &model.BlogComment{
		BlogID:  blogID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := h.service.CreateComment(c.Request.Context(), comment); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, comment)
}
