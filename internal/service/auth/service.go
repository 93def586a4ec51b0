package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
	"github.com/Shefwef/ghuroo-api/pkg/auth"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
	"github.com/Shefwef/ghuroo-api/pkg/security"
	"github.com/Shefwef/ghuroo-api/pkg/validator"
)

type Service struct {
	repo      repository.UserRepository
	jwt       auth.JWTService
	hasher    security.PasswordHasher
	validator validator.Validator
	logger    *zerolog.Logger
}

func NewService(repo repository.UserRepository, jwt auth.JWTService, logger *zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		jwt:       jwt,
		hasher:    security.NewBcryptHasher(security.DefaultCost),
		validator: validator.New(),
		logger:    logger,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperrors.Validation("email already registered", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.UserRoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (string, *model.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", nil, apperrors.Validation(err.Error(), err)
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, apperrors.Unauthorized(err)
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return "", nil, apperrors.Unauthorized(err)
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}
