package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
	"github.com/Shefwef/ghuroo-api/pkg/metrics"
)

// FanOuter is the surface domain services use to trigger fan-out after
// their primary write commits.
type FanOuter interface {
	FanOut(ctx context.Context, event Event) error
}

// Orchestrator translates one domain event into per-recipient notification
// creates. The admin set is re-resolved on every event; a slightly stale
// set is acceptable. Creates run concurrently with no ordering between
// them, and notifications that succeed are never rolled back when a
// sibling create fails.
type Orchestrator struct {
	store    Servicer
	accounts repository.UserRepository
	metrics  *metrics.Metrics
	logger   *zerolog.Logger
}

func NewOrchestrator(store Servicer, accounts repository.UserRepository, m *metrics.Metrics, logger *zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:    store,
		accounts: accounts,
		metrics:  m,
		logger:   logger,
	}
}

type target struct {
	recipientID uuid.UUID
	title       string
	message     string
}

// FanOut resolves recipients and issues one create per recipient. All
// failures across the batch are collected and returned joined, so a caller
// sees every recipient that missed its copy, not just the first.
func (o *Orchestrator) FanOut(ctx context.Context, event Event) error {
	start := time.Now()

	targets, err := o.resolveTargets(ctx, event)
	if err != nil {
		return err
	}

	if o.metrics != nil {
		o.metrics.FanoutEvents.WithLabelValues(string(event.Type)).Inc()
		o.metrics.FanoutRecipients.Observe(float64(len(targets)))
	}

	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures []error
	)

	for _, t := range targets {
		t := t
		g.Go(func() error {
			n := &model.Notification{
				RecipientID:    t.recipientID,
				Title:          t.title,
				Message:        t.message,
				Type:           event.Type,
				ReferenceID:    event.ReferenceID,
				ReferenceModel: event.ReferenceModel,
			}
			if err := o.store.Create(ctx, n); err != nil {
				if o.metrics != nil {
					o.metrics.FanoutFailures.WithLabelValues(string(event.Type)).Inc()
				}
				mu.Lock()
				failures = append(failures, fmt.Errorf("recipient %s: %w", t.recipientID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	if o.metrics != nil {
		o.metrics.FanoutDuration.Observe(time.Since(start).Seconds())
	}

	if len(failures) > 0 {
		o.logger.Error().
			Str("event_type", string(event.Type)).
			Int("failed", len(failures)).
			Int("total", len(targets)).
			Msg("fan-out completed with failures")
		return fmt.Errorf("fan-out for %s event: %w", event.Type, errors.Join(failures...))
	}

	return nil
}

// resolveTargets queries the admin set and renders the per-recipient
// title/message pairs. Booking status changes additionally target the
// booking owner with the user copy.
func (o *Orchestrator) resolveTargets(ctx context.Context, event Event) ([]target, error) {
	adminTitle, adminMessage, err := renderAdmin(event)
	if err != nil {
		return nil, apperrors.Validation("cannot render event", err)
	}

	admins, err := o.accounts.ListAdmins(ctx)
	if err != nil {
		return nil, apperrors.Dependency("account directory", err)
	}

	targets := make([]target, 0, len(admins)+1)
	for _, admin := range admins {
		targets = append(targets, target{
			recipientID: admin.ID,
			title:       adminTitle,
			message:     adminMessage,
		})
	}

	if event.UserRecipient != nil {
		userTitle, userMessage, err := renderUser(event)
		if err != nil {
			return nil, apperrors.Validation("cannot render user copy", err)
		}
		targets = append(targets, target{
			recipientID: *event.UserRecipient,
			title:       userTitle,
			message:     userMessage,
		})
	}

	return targets, nil
}
