package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
	"github.com/Shefwef/ghuroo-api/internal/service/notification"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
)

type Service struct {
	repo   repository.ReviewRepository
	tours  repository.TourRepository
	users  repository.UserRepository
	fanout notification.FanOuter
	logger *zerolog.Logger
}

func NewService(repo repository.ReviewRepository, tours repository.TourRepository, users repository.UserRepository, fanout notification.FanOuter, logger *zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tours:  tours,
		users:  users,
		fanout: fanout,
		logger: logger,
	}
}

func (s *Service) CreateReview(ctx context.Context, review *model.Review) error {
	if err := review.Validate(); err != nil {
		return apperrors.Validation("invalid review", err)
	}

	tour, err := s.tours.Get(ctx, review.TourID)
	if err != nil {
		return apperrors.NotFound("tour", err)
	}

	user, err := s.users.Get(ctx, review.UserID)
	if err != nil {
		return apperrors.NotFound("user", err)
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	refModel := model.ReferenceModelReview
	event := notification.Event{
		Type:           model.NotificationTypeReview,
		ActorName:      user.Name,
		TourTitle:      tour.Title,
		Rating:         review.Rating,
		ReferenceID:    &review.ID,
		ReferenceModel: &refModel,
	}
	if err := s.fanout.FanOut(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("review_id", review.ID.String()).Msg("review fan-out failed")
	}

	return nil
}

func (s *Service) ListTourReviews(ctx context.Context, tourID uuid.UUID) ([]*model.Review, error) {
	reviews, err := s.repo.ListByTour(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
