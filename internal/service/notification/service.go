package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
	"github.com/Shefwef/ghuroo-api/pkg/messaging"
	"github.com/Shefwef/ghuroo-api/pkg/metrics"
)

// DefaultListLimit caps ListByRecipient when no limit is configured.
const DefaultListLimit = 50

// Servicer is the notification store surface: durable CRUD plus the
// per-recipient read-state operations behind UI badges.
type Servicer interface {
	Create(ctx context.Context, notification *model.Notification) error
	List(ctx context.Context, recipientID uuid.UUID, limit int) ([]*model.Notification, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      repository.NotificationRepository
	broker    messaging.Broker
	metrics   *metrics.Metrics
	logger    *zerolog.Logger
	listLimit int
}

func NewService(repo repository.NotificationRepository, broker messaging.Broker, m *metrics.Metrics, logger *zerolog.Logger, listLimit int) Servicer {
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &service{
		repo:      repo,
		broker:    broker,
		metrics:   m,
		logger:    logger,
		listLimit: listLimit,
	}
}

// Create persists the notification, then publishes it for live delivery on
// the recipient's channel. The publish is best effort: a broker failure is
// logged and never surfaced to the caller.
func (s *service) Create(ctx context.Context, n *model.Notification) error {
	if n.Type == "" {
		n.Type = model.NotificationTypeSystem
	}
	if err := n.Validate(); err != nil {
		return apperrors.Validation("invalid notification", err)
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if s.metrics != nil {
		s.metrics.NotificationsSent.Inc()
	}

	if s.broker != nil {
		channel := fmt.Sprintf("notifications:%s", n.RecipientID)
		msg := messaging.Message{Type: "notification.created", Payload: n}
		if err := s.broker.Publish(ctx, channel, msg); err != nil {
			if s.metrics != nil {
				s.metrics.BrokerPublishes.WithLabelValues("error").Inc()
			}
			s.logger.Warn().Err(err).Str("channel", channel).Msg("failed to publish notification")
		} else if s.metrics != nil {
			s.metrics.BrokerPublishes.WithLabelValues("ok").Inc()
		}
	}

	return nil
}

func (s *service) List(ctx context.Context, recipientID uuid.UUID, limit int) ([]*model.Notification, error) {
	if limit <= 0 || limit > s.listLimit {
		limit = s.listLimit
	}

	notifications, err := s.repo.ListByRecipient(ctx, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("notification", err)
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

func (s *service) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	count, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead is idempotent: re-marking an already-read notification succeeds.
func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("notification", err)
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	count, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return count, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("notification", err)
		}
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
