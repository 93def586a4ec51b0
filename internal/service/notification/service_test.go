package notification

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shefwef/ghuroo-api/internal/model"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
)

// fakeNotificationRepo is an in-memory stand-in for the postgres repository.
type fakeNotificationRepo struct {
	mu        sync.Mutex
	records   map[uuid.UUID]*model.Notification
	seq       int
	createErr func(n *model.Notification) error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{records: make(map[uuid.UUID]*model.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		if err := f.createErr(n); err != nil {
			return err
		}
	}

	n.ID = uuid.New()
	n.IsRead = false
	f.seq++
	n.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Second)

	stored := *n
	f.records[n.ID] = &stored
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID uuid.UUID, limit int) ([]*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*model.Notification{}
	for _, n := range f.records {
		if n.RecipientID == recipientID {
			copied := *n
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, recipientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, n := range f.records {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, ok := f.records[id]
	if !ok {
		return sql.ErrNoRows
	}
	n.IsRead = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var affected int64
	for _, n := range f.records {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			affected++
		}
	}
	return affected, nil
}

func (f *fakeNotificationRepo) Get(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, ok := f.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *n
	return &copied, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.records, id)
	return nil
}

func (f *fakeNotificationRepo) DeleteReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var deleted int64
	for id, n := range f.records {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			delete(f.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeNotificationRepo) all() []*model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*model.Notification, 0, len(f.records))
	for _, n := range f.records {
		copied := *n
		out = append(out, &copied)
	}
	return out
}

func newTestService(repo *fakeNotificationRepo) Servicer {
	nop := zerolog.Nop()
	return NewService(repo, nil, nil, &nop, DefaultListLimit)
}

func TestCreateSetsDefaults(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo)

	refID := uuid.New()
	refModel := model.ReferenceModelTour
	cases := []*model.Notification{
		{RecipientID: uuid.New(), Title: "t", Message: "m"},
		{RecipientID: uuid.New(), Title: "t", Message: "m", ReferenceID: &refID, ReferenceModel: &refModel},
	}

	for _, n := range cases {
		require.NoError(t, svc.Create(context.Background(), n))
		assert.False(t, n.IsRead)
		assert.False(t, n.CreatedAt.IsZero())
		assert.NotEqual(t, uuid.Nil, n.ID)
	}

	// Unspecified type defaults to system.
	assert.Equal(t, model.NotificationTypeSystem, cases[0].Type)
}

func TestCreateValidation(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.Notification{Title: "t", Message: "m"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, repo.all())
}

func TestMarkReadIdempotent(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo)

	n := &model.Notification{RecipientID: uuid.New(), Title: "t", Message: "m"}
	require.NoError(t, svc.Create(context.Background(), n))

	require.NoError(t, svc.MarkRead(context.Background(), n.ID))
	require.NoError(t, svc.MarkRead(context.Background(), n.ID))

	stored, err := svc.Get(context.Background(), n.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
}

func TestMarkReadMissing(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo)

	n := &model.Notification{RecipientID: uuid.New(), Title: "t", Message: "m"}
	require.NoError(t, svc.Create(context.Background(), n))

	err := svc.MarkRead(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	// Store unchanged.
	stored, err := svc.Get(context.Background(), n.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsRead)
}

func TestMarkAllReadClearsUnread(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo)

	recipient := uuid.New()
	for i := 0; i < 5; i++ {
		n := &model.Notification{RecipientID: recipient, Title: "t", Message: fmt.Sprintf("m%d", i)}
		require.NoError(t, svc.Create(context.Background(), n))
	}

	count, err := svc.MarkAllRead(context.Background(), recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	unread, err := svc.UnreadCount(context.Background(), recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	// Nothing left unread means a second pass affects zero rows.
	count, err = svc.MarkAllRead(context.Background(), recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestListCapsLimitAndOrdersNewestFirst(t *testing.T) {
	repo := newFakeNotificationRepo()
	nop := zerolog.Nop()
	svc := NewService(repo, nil, nil, &nop, 10)

	recipient := uuid.New()
	for i := 0; i < 15; i++ {
		n := &model.Notification{RecipientID: recipient, Title: "t", Message: fmt.Sprintf("m%d", i)}
		require.NoError(t, svc.Create(context.Background(), n))
	}

	list, err := svc.List(context.Background(), recipient, 0)
	require.NoError(t, err)
	assert.Len(t, list, 10)
	for i := 1; i < len(list); i++ {
		assert.True(t, !list[i-1].CreatedAt.Before(list[i].CreatedAt), "list must be newest-first")
	}

	// A requested limit above the cap is clamped.
	list, err = svc.List(context.Background(), recipient, 100)
	require.NoError(t, err)
	assert.Len(t, list, 10)

	// Empty result is not an error.
	list, err = svc.List(context.Background(), uuid.New(), 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteMissing(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
