package notification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shefwef/ghuroo-api/internal/model"
	apperrors "github.com/Shefwef/ghuroo-api/pkg/errors"
)

type fakeUserRepo struct {
	admins    []*model.User
	adminsErr error
}

func (f *fakeUserRepo) Create(context.Context, *model.User) error { return nil }
func (f *fakeUserRepo) Get(context.Context, uuid.UUID) (*model.User, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeUserRepo) Update(context.Context, *model.User) error { return nil }
func (f *fakeUserRepo) ListAdmins(context.Context) ([]*model.User, error) {
	return f.admins, f.adminsErr
}

func admin(name string) *model.User {
	u := &model.User{Name: name, Email: name + "@example.com", Role: model.UserRoleAdmin}
	u.ID = uuid.New()
	return u
}

func newTestOrchestrator(repo *fakeNotificationRepo, users *fakeUserRepo) *Orchestrator {
	nop := zerolog.Nop()
	store := NewService(repo, nil, nil, &nop, DefaultListLimit)
	return NewOrchestrator(store, users, nil, &nop)
}

func TestFanOutBookingEvent(t *testing.T) {
	repo := newFakeNotificationRepo()
	admins := []*model.User{admin("alice"), admin("bob")}
	orch := newTestOrchestrator(repo, &fakeUserRepo{admins: admins})

	refID := uuid.New()
	refModel := model.ReferenceModelBooking
	event := Event{
		Type:           model.NotificationTypeBooking,
		ActorName:      "U",
		TourTitle:      "Sundown Trek",
		Persons:        3,
		BookingDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ReferenceID:    &refID,
		ReferenceModel: &refModel,
	}

	require.NoError(t, orch.FanOut(context.Background(), event))

	stored := repo.all()
	require.Len(t, stored, 2)

	recipients := map[uuid.UUID]bool{}
	for _, n := range stored {
		recipients[n.RecipientID] = true
		assert.Equal(t, "New Booking", n.Title)
		assert.Equal(t, "U has booked Sundown Trek for 3 person(s) on 6/1/2024.", n.Message)
		assert.Equal(t, model.NotificationTypeBooking, n.Type)
		assert.False(t, n.IsRead)
		require.NotNil(t, n.ReferenceID)
		assert.Equal(t, refID, *n.ReferenceID)
		require.NotNil(t, n.ReferenceModel)
		assert.Equal(t, model.ReferenceModelBooking, *n.ReferenceModel)
	}
	for _, a := range admins {
		assert.True(t, recipients[a.ID], "admin %s must receive a copy", a.Name)
	}
}

func TestFanOutBookingStatusIncludesOwner(t *testing.T) {
	repo := newFakeNotificationRepo()
	adminUser := admin("alice")
	orch := newTestOrchestrator(repo, &fakeUserRepo{admins: []*model.User{adminUser}})

	ownerID := uuid.New()
	event := Event{
		Type:          model.NotificationTypeBookingStatus,
		ActorName:     "U",
		TourTitle:     "Sundown Trek",
		Status:        "confirmed",
		UserRecipient: &ownerID,
	}

	require.NoError(t, orch.FanOut(context.Background(), event))

	stored := repo.all()
	require.Len(t, stored, 2)

	byRecipient := map[uuid.UUID]*model.Notification{}
	for _, n := range stored {
		byRecipient[n.RecipientID] = n
	}

	adminCopy := byRecipient[adminUser.ID]
	require.NotNil(t, adminCopy)
	assert.Equal(t, "Booking Status Updated", adminCopy.Title)
	assert.Equal(t, "Booking for Sundown Trek by U has been confirmed.", adminCopy.Message)

	ownerCopy := byRecipient[ownerID]
	require.NotNil(t, ownerCopy)
	assert.Equal(t, "Booking Update", ownerCopy.Title)
	assert.Equal(t, "Your booking for Sundown Trek has been confirmed.", ownerCopy.Message)
}

func TestFanOutCollectsAllFailures(t *testing.T) {
	repo := newFakeNotificationRepo()
	failing := map[uuid.UUID]bool{}
	repo.createErr = func(n *model.Notification) error {
		if failing[n.RecipientID] {
			return errors.New("insert refused")
		}
		return nil
	}

	admins := []*model.User{admin("a"), admin("b"), admin("c")}
	failing[admins[0].ID] = true
	failing[admins[2].ID] = true

	orch := newTestOrchestrator(repo, &fakeUserRepo{admins: admins})

	err := orch.FanOut(context.Background(), Event{
		Type:      model.NotificationTypeProfileUpdate,
		ActorName: "U",
	})
	require.Error(t, err)

	// Both failing recipients appear in the joined error.
	assert.Equal(t, 2, strings.Count(err.Error(), "insert refused"))
	assert.Contains(t, err.Error(), admins[0].ID.String())
	assert.Contains(t, err.Error(), admins[2].ID.String())

	// The successful create is kept, not rolled back.
	stored := repo.all()
	require.Len(t, stored, 1)
	assert.Equal(t, admins[1].ID, stored[0].RecipientID)
}

func TestFanOutAdminLookupFailure(t *testing.T) {
	repo := newFakeNotificationRepo()
	orch := newTestOrchestrator(repo, &fakeUserRepo{adminsErr: errors.New("directory down")})

	err := orch.FanOut(context.Background(), Event{
		Type:      model.NotificationTypeProfileUpdate,
		ActorName: "U",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsDependency(err))
	assert.Empty(t, repo.all(), "no notifications may be created when the admin set is unknown")
}

func TestFanOutUnsupportedEventType(t *testing.T) {
	repo := newFakeNotificationRepo()
	orch := newTestOrchestrator(repo, &fakeUserRepo{admins: []*model.User{admin("a")}})

	err := orch.FanOut(context.Background(), Event{Type: model.NotificationTypeSystem})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, repo.all())
}

func TestFanOutZeroAdmins(t *testing.T) {
	repo := newFakeNotificationRepo()
	orch := newTestOrchestrator(repo, &fakeUserRepo{})

	err := orch.FanOut(context.Background(), Event{
		Type:      model.NotificationTypeProfileUpdate,
		ActorName: "U",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.all())
}
