package tour

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
	repo   repository.TourRepository
	users  repository.UserRepository
	fanout notification.FanOuter
	logger *zerolog.Logger
}

func NewService(repo repository.TourRepository, users repository.UserRepository, fanout notification.FanOuter, logger *zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		fanout: fanout,
		logger: logger,
	}
}

// CreateTour commits the tour and announces it to the admin set.
func (s *Service) CreateTour(ctx context.Context, actorID uuid.UUID, tour *model.Tour) error {
	if tour.Title == "" || tour.Price <= 0 {
		return apperrors.Validation("title and positive price are required", nil)
	}

	actor, err := s.users.Get(ctx, actorID)
	if err != nil {
		return apperrors.NotFound("user", err)
	}

	if err := s.repo.Create(ctx, tour); err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}

	refModel := model.ReferenceModelTour
	event := notification.Event{
		Type:           model.NotificationTypeTourCreation,
		ActorName:      actor.Name,
		TourTitle:      tour.Title,
		ReferenceID:    &tour.ID,
		ReferenceModel: &refModel,
	}
	if err := s.fanout.FanOut(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("tour_id", tour.ID.String()).Msg("tour fan-out failed")
	}

	return nil
}

func (s *Service) GetTour(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	tour, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("tour", err)
		}
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}
	return tour, nil
}

func (s *Service) ListTours(ctx context.Context) ([]*model.Tour, error) {
	tours, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}
	return tours, nil
}
