package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Shefwef/ghuroo-api/internal/email"
	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
	"github.com/Shefwef/ghuroo-api/internal/service/notification"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
)

type Service struct {
	repo     repository.BookingRepository
	tours    repository.TourRepository
	users    repository.UserRepository
	fanout   notification.FanOuter
	emailSvc email.Service
	logger   *zerolog.Logger
}

func NewService(repo repository.BookingRepository, tours repository.TourRepository, users repository.UserRepository, fanout notification.FanOuter, emailSvc email.Service, logger *zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		tours:    tours,
		users:    users,
		fanout:   fanout,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

// CreateBooking commits the booking, then notifies all admins. A fan-out
// failure never fails the booking itself.
func (s *Service) CreateBooking(ctx context.Context, booking *model.Booking) error {
	if err := booking.Validate(); err != nil {
		return apperrors.Validation("invalid booking", err)
	}

	tour, err := s.tours.Get(ctx, booking.TourID)
	if err != nil {
		return apperrors.NotFound("tour", err)
	}

	user, err := s.users.Get(ctx, booking.UserID)
	if err != nil {
		return apperrors.NotFound("user", err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	refModel := model.ReferenceModelBooking
	event := notification.Event{
		Type:           model.NotificationTypeBooking,
		ActorName:      user.Name,
		TourTitle:      tour.Title,
		Persons:        booking.Persons,
		BookingDate:    booking.BookingDate,
		ReferenceID:    &booking.ID,
		ReferenceModel: &refModel,
	}
	if err := s.fanout.FanOut(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID.String()).Msg("booking fan-out failed")
	}

	if s.emailSvc != nil {
		date := booking.BookingDate.Format("1/2/2006")
		if err := s.emailSvc.SendBookingConfirmation(ctx, user.Email, tour.Title, date); err != nil {
			s.logger.Warn().Err(err).Str("booking_id", booking.ID.String()).Msg("confirmation email failed")
		}
	}

	return nil
}

// UpdateStatus transitions a booking and notifies both the admins and the
// booking owner, each with their own template.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Booking, error) {
	if !model.ValidBookingStatus(status) {
		return nil, apperrors.Validation(fmt.Sprintf("invalid booking status: %s", status), nil)
	}

	booking, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	tour, err := s.tours.Get(ctx, booking.TourID)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", id.String()).Msg("status fan-out skipped: tour lookup failed")
		return booking, nil
	}
	user, err := s.users.Get(ctx, booking.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", id.String()).Msg("status fan-out skipped: user lookup failed")
		return booking, nil
	}

	refModel := model.ReferenceModelBooking
	event := notification.Event{
		Type:           model.NotificationTypeBookingStatus,
		ActorName:      user.Name,
		TourTitle:      tour.Title,
		Status:         status,
		ReferenceID:    &booking.ID,
		ReferenceModel: &refModel,
		UserRecipient:  &booking.UserID,
	}
	if err := s.fanout.FanOut(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("booking_id", id.String()).Msg("booking status fan-out failed")
	}

	return booking, nil
}

func (s *Service) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
