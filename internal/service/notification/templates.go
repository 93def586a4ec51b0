package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/model"
)

// Event describes one completed domain change to fan out. The primary
// entity is already committed by the time an Event is built.
type Event struct {
	Type           model.NotificationType
	ActorName      string
	TourTitle      string
	BlogTitle      string
	Persons        int
	BookingDate    time.Time
	Rating         int
	Status         string
	ReferenceID    *uuid.UUID
	ReferenceModel *model.ReferenceModel

	// UserRecipient is set only for booking status changes: the booking
	// owner receives a copy with its own template.
	UserRecipient *uuid.UUID
}

const bookingDateFormat = "1/2/2006"

// renderAdmin produces the title/message pair sent to every admin for the
// given event type.
func renderAdmin(e Event) (string, string, error) {
	switch e.Type {
	case model.NotificationTypeBooking:
		return "New Booking",
			fmt.Sprintf("%s has booked %s for %d person(s) on %s.",
				e.ActorName, e.TourTitle, e.Persons, e.BookingDate.Format(bookingDateFormat)),
			nil
	case model.NotificationTypeBookingStatus:
		return "Booking Status Updated",
			fmt.Sprintf("Booking for %s by %s has been %s.", e.TourTitle, e.ActorName, e.Status),
			nil
	case model.NotificationTypeReview:
		return "New Review",
			fmt.Sprintf("%s has submitted a %d-star review for %s.", e.ActorName, e.Rating, e.TourTitle),
			nil
	case model.NotificationTypeBlog:
		return "New Blog",
			fmt.Sprintf("%s has published a new blog: %q.", e.ActorName, e.BlogTitle),
			nil
	case model.NotificationTypeBlogComment:
		return "New Comment",
			fmt.Sprintf("%s commented on the blog %q.", e.ActorName, e.BlogTitle),
			nil
	case model.NotificationTypeProfileUpdate:
		return "Profile Updated",
			fmt.Sprintf("%s has updated their profile.", e.ActorName),
			nil
	case model.NotificationTypeTourCreation:
		return "New Tour",
			fmt.Sprintf("%s has created a new tour: %s.", e.ActorName, e.TourTitle),
			nil
	default:
		return "", "", fmt.Errorf("unsupported fan-out event type: %s", e.Type)
	}
}

// renderUser produces the copy addressed to the booking owner. Only
// booking status changes carry a user copy.
func renderUser(e Event) (string, string, error) {
	if e.Type != model.NotificationTypeBookingStatus {
		return "", "", fmt.Errorf("no user copy for event type: %s", e.Type)
	}
	return "Booking Update",
		fmt.Sprintf("Your booking for %s has been %s.", e.TourTitle, e.Status),
		nil
}
