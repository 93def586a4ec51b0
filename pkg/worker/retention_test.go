package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/pkg/logger"
)

type fakeNotificationRepo struct {
	mu       sync.Mutex
	records  map[uuid.UUID]*model.Notification
	sweepErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{records: make(map[uuid.UUID]*model.Notification)}
}

func (f *fakeNotificationRepo) add(isRead bool, createdAt time.Time) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.records[id] = &model.Notification{
		ID:          id,
		RecipientID: uuid.New(),
		Title:       "t",
		Message:     "m",
		Type:        model.NotificationTypeSystem,
		IsRead:      isRead,
		CreatedAt:   createdAt,
	}
	return id
}

func (f *fakeNotificationRepo) has(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[id]
	return ok
}

func (f *fakeNotificationRepo) Create(context.Context, *model.Notification) error { return nil }
func (f *fakeNotificationRepo) ListByRecipient(context.Context, uuid.UUID, int) ([]*model.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) CountUnread(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}
func (f *fakeNotificationRepo) MarkRead(context.Context, uuid.UUID) error  { return nil }
func (f *fakeNotificationRepo) MarkAllRead(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}
func (f *fakeNotificationRepo) Get(context.Context, uuid.UUID) (*model.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeNotificationRepo) DeleteReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sweepErr != nil {
		return 0, f.sweepErr
	}

	var deleted int64
	for id, n := range f.records {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			delete(f.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func quietLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func TestSweepDeletesOnlyOldReadNotifications(t *testing.T) {
	repo := newFakeNotificationRepo()

	oldRead := repo.add(true, time.Now().AddDate(0, 0, -60))
	oldUnread := repo.add(false, time.Now().AddDate(0, 0, -60))
	recentRead := repo.add(true, time.Now().AddDate(0, 0, -1))

	w := NewRetentionWorker(repo, RetentionConfig{RetentionDays: 30, SweepInterval: time.Hour}, quietLogger(), nil)
	require.NoError(t, w.Sweep(context.Background()))

	assert.False(t, repo.has(oldRead), "read notification past retention must be deleted")
	assert.True(t, repo.has(oldUnread), "unread notifications are never swept")
	assert.True(t, repo.has(recentRead), "read notifications inside the window are kept")
}

func TestSweepPropagatesRepositoryError(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.sweepErr = errors.New("connection reset")

	w := NewRetentionWorker(repo, RetentionConfig{RetentionDays: 30, SweepInterval: time.Hour}, quietLogger(), nil)
	err := w.Sweep(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.sweepErr)
}

func TestNewRetentionWorkerRejectsBadConfig(t *testing.T) {
	repo := newFakeNotificationRepo()

	assert.Panics(t, func() {
		NewRetentionWorker(repo, RetentionConfig{RetentionDays: 0, SweepInterval: time.Hour}, quietLogger(), nil)
	})
	assert.Panics(t, func() {
		NewRetentionWorker(repo, RetentionConfig{RetentionDays: 30}, quietLogger(), nil)
	})
}

func TestStartStopsOnContextCancel(t *testing.T) {
	repo := newFakeNotificationRepo()
	w := NewRetentionWorker(repo, RetentionConfig{RetentionDays: 30, SweepInterval: 10 * time.Millisecond}, quietLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
