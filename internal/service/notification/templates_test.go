package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shefwef/ghuroo-api/internal/model"
)

func TestRenderAdmin(t *testing.T) {
	date := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		event       Event
		wantTitle   string
		wantMessage string
	}{
		{
			name: "booking",
			event: Event{
				Type: model.NotificationTypeBooking, ActorName: "Mina",
				TourTitle: "Reef Dive", Persons: 1, BookingDate: date,
			},
			wantTitle:   "New Booking",
			wantMessage: "Mina has booked Reef Dive for 1 person(s) on 12/25/2024.",
		},
		{
			name: "booking status",
			event: Event{
				Type: model.NotificationTypeBookingStatus, ActorName: "Mina",
				TourTitle: "Reef Dive", Status: "cancelled",
			},
			wantTitle:   "Booking Status Updated",
			wantMessage: "Booking for Reef Dive by Mina has been cancelled.",
		},
		{
			name: "review",
			event: Event{
				Type: model.NotificationTypeReview, ActorName: "Mina",
				TourTitle: "Reef Dive", Rating: 4,
			},
			wantTitle:   "New Review",
			wantMessage: "Mina has submitted a 4-star review for Reef Dive.",
		},
		{
			name: "blog",
			event: Event{
				Type: model.NotificationTypeBlog, ActorName: "Mina", BlogTitle: "Packing Light",
			},
			wantTitle:   "New Blog",
			wantMessage: `Mina has published a new blog: "Packing Light".`,
		},
		{
			name: "blog comment",
			event: Event{
				Type: model.NotificationTypeBlogComment, ActorName: "Mina", BlogTitle: "Packing Light",
			},
			wantTitle:   "New Comment",
			wantMessage: `Mina commented on the blog "Packing Light".`,
		},
		{
			name:        "profile update",
			event:       Event{Type: model.NotificationTypeProfileUpdate, ActorName: "Mina"},
			wantTitle:   "Profile Updated",
			wantMessage: "Mina has updated their profile.",
		},
		{
			name: "tour creation",
			event: Event{
				Type: model.NotificationTypeTourCreation, ActorName: "Mina", TourTitle: "Reef Dive",
			},
			wantTitle:   "New Tour",
			wantMessage: "Mina has created a new tour: Reef Dive.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, message, err := renderAdmin(tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestRenderAdminUnsupported(t *testing.T) {
	for _, typ := range []model.NotificationType{model.NotificationTypeSystem, model.NotificationTypeUser, "bogus"} {
		_, _, err := renderAdmin(Event{Type: typ})
		assert.Error(t, err, "type %s has no admin template", typ)
	}
}

func TestRenderUser(t *testing.T) {
	title, message, err := renderUser(Event{
		Type: model.NotificationTypeBookingStatus, TourTitle: "Reef Dive", Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, "Booking Update", title)
	assert.Equal(t, "Your booking for Reef Dive has been confirmed.", message)

	_, _, err = renderUser(Event{Type: model.NotificationTypeBooking})
	assert.Error(t, err)
}
