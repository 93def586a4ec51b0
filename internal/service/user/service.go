package user

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
	repo   repository.UserRepository
	fanout notification.FanOuter
	logger *zerolog.Logger
}

func NewService(repo repository.UserRepository, fanout notification.FanOuter, logger *zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		fanout: fanout,
		logger: logger,
	}
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the requested changes, then announces the update
// to the admin set.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	refModel := model.ReferenceModelUser
	event := notification.Event{
		Type:           model.NotificationTypeProfileUpdate,
		ActorName:      user.Name,
		ReferenceID:    &user.ID,
		ReferenceModel: &refModel,
	}
	if err := s.fanout.FanOut(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("profile fan-out failed")
	}

	return user, nil
}
