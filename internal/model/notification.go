package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NotificationType tags a notification with the domain event that produced it.
type NotificationType string

const (
	NotificationTypeBooking       NotificationType = "booking"
	NotificationTypeReview        NotificationType = "review"
	NotificationTypeUser          NotificationType = "user"
	NotificationTypeBlog          NotificationType = "blog"
	NotificationTypeSystem        NotificationType = "system"
	NotificationTypeBlogComment   NotificationType = "blog_comment"
	NotificationTypeTourCreation  NotificationType = "tour_creation"
	NotificationTypeBookingStatus NotificationType = "booking_status"
	NotificationTypeProfileUpdate NotificationType = "profile_update"
)

// Valid reports whether t is a member of the closed enumeration.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeBooking, NotificationTypeReview, NotificationTypeUser,
		NotificationTypeBlog, NotificationTypeSystem, NotificationTypeBlogComment,
		NotificationTypeTourCreation, NotificationTypeBookingStatus,
		NotificationTypeProfileUpdate:
		return true
	}
	return false
}

// ReferenceModel names the entity type a notification points at.
type ReferenceModel string

const (
	ReferenceModelBooking     ReferenceModel = "Booking"
	ReferenceModelReview      ReferenceModel = "Review"
	ReferenceModelUser        ReferenceModel = "User"
	ReferenceModelBlog        ReferenceModel = "Blog"
	ReferenceModelBlogComment ReferenceModel = "BlogComment"
	ReferenceModelTour        ReferenceModel = "Tour"
)

func (m ReferenceModel) Valid() bool {
	switch m {
	case ReferenceModelBooking, ReferenceModelReview, ReferenceModelUser,
		ReferenceModelBlog, ReferenceModelBlogComment, ReferenceModelTour:
		return true
	}
	return false
}

// Notification is one message addressed to one recipient. Content fields are
// immutable after creation; only IsRead transitions, and only false to true.
type Notification struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	RecipientID    uuid.UUID        `json:"recipient_id" db:"recipient_id"`
	Title          string           `json:"title" db:"title"`
	Message        string           `json:"message" db:"message"`
	Type           NotificationType `json:"type" db:"type"`
	ReferenceID    *uuid.UUID       `json:"reference_id,omitempty" db:"reference_id"`
	ReferenceModel *ReferenceModel  `json:"reference_model,omitempty" db:"reference_model"`
	IsRead         bool             `json:"is_read" db:"is_read"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}

// Validate checks required fields and enum membership before persistence.
func (n *Notification) Validate() error {
	if n.RecipientID == uuid.Nil {
		return fmt.Errorf("recipient ID is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(n.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if n.Type != "" && !n.Type.Valid() {
		return fmt.Errorf("invalid notification type: %s", n.Type)
	}
	if n.ReferenceID != nil {
		if n.ReferenceModel == nil {
			return fmt.Errorf("reference model is required when reference ID is set")
		}
		if !n.ReferenceModel.Valid() {
			return fmt.Errorf("invalid reference model: %s", *n.ReferenceModel)
		}
	}
	return nil
}

// CreateNotificationRequest is the admin-facing payload for direct system
// notifications.
type CreateNotificationRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Message     string `json:"message" binding:"required"`
}
