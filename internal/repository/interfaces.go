package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/model"
)

// All repository interfaces in one file
type (
	// NotificationRepository handles durable CRUD for notifications.
	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]*model.Notification, error)
		CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
		MarkRead(ctx context.Context, id uuid.UUID) error
		MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		Delete(ctx context.Context, id uuid.UUID) error
		DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}

	// UserRepository is the account directory.
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		ListAdmins(ctx context.Context) ([]*model.User, error)
	}

	TourRepository interface {
		Create(ctx context.Context, tour *model.Tour) error
		Get(ctx context.Context, id uuid.UUID) (*model.Tour, error)
		List(ctx context.Context) ([]*model.Tour, error)
	}

	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Booking, error)
		ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error)
	}

	ReviewRepository interface {
		Create(ctx context.Context, review *model.Review) error
		ListByTour(ctx context.Context, tourID uuid.UUID) ([]*model.Review, error)
	}

	BlogRepository interface {
		Create(ctx context.Context, blog *model.Blog) error
		Get(ctx context.Context, id uuid.UUID) (*model.Blog, error)
		List(ctx context.Context) ([]*model.Blog, error)
		CreateComment(ctx context.Context, comment *model.BlogComment) error
		ListComments(ctx context.Context, blogID uuid.UUID) ([]*model.BlogComment, error)
	}
)
