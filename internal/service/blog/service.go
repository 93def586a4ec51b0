package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
	"github.com/Shefwef/ghuroo-api/internal/service/notification"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
)

type Service struct {
	repo   repository.BlogRepository
	users  repository.UserRepository
	fanout notification.FanOuter
	logger *zerolog.Logger
}

func NewService(repo repository.BlogRepository, users repository.UserRepository, fanout notification.FanOuter, logger *zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		fanout: fanout,
		logger: logger,
	}
}

func (s *Service) CreateBlog(ctx context.Context, blog *model.Blog) error {
	if blog.Title == "" || blog.Content == "" {
		return apperrors.Validation("title and content are required", nil)
	}

	author, err := s.users.Get(ctx, blog.AuthorID)
	if err != nil {
		return apperrors.NotFound("user", err)
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	refModel := model.ReferenceModelBlog
	event := notification.Event{
		Type:           model.NotificationTypeBlog,
		ActorName:      author.Name,
		BlogTitle:      blog.Title,
		ReferenceID:    &blog.ID,
		ReferenceModel: &refModel,
	}
	if err := s.fanout.FanOut(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("blog_id", blog.ID.String()).Msg("blog fan-out failed")
	}

	return nil
}

func (s *Service) GetBlog(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	blog, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("blog", err)
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}

func (s *Service) ListBlogs(ctx context.Context) ([]*model.Blog, error) {
	blogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, nil
}

func (s *Service) CreateComment(ctx context.Context, comment *model.BlogComment) error {
	if comment.Content == "" {
		return apperrors.Validation("content is required", nil)
	}

	blog, err := s.repo.Get(ctx, comment.BlogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("blog", err)
		}
		return fmt.Errorf("failed to get blog: %w", err)
	}

	user, err := s.users.Get(ctx, comment.UserID)
	if err != nil {
		return apperrors.NotFound("user", err)
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	refModel := model.ReferenceModelBlogComment
	event := notification.Event{
		Type:           model.NotificationTypeBlogComment,
		ActorName:      user.Name,
		BlogTitle:      blog.Title,
		ReferenceID:    &comment.ID,
		ReferenceModel: &refModel,
	}
	if err := s.fanout.FanOut(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("comment_id", comment.ID.String()).Msg("comment fan-out failed")
	}

	return nil
}

func (s *Service) ListComments(ctx context.Context, blogID uuid.UUID) ([]*model.BlogComment, error) {
	comments, err := s.repo.ListComments(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
