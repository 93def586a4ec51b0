package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Booking status constants
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking ties a user to a tour on a date.
type Booking struct {
	Base
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	TourID      uuid.UUID `json:"tour_id" db:"tour_id"`
	Persons     int       `json:"persons" db:"persons"`
	BookingDate time.Time `json:"booking_date" db:"booking_date"`
	Status      string    `json:"status" db:"status"`
}

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

func (b *Booking) Validate() error {
	if b.UserID == uuid.Nil {
		return fmt.Errorf("user ID is required")
	}
	if b.TourID == uuid.Nil {
		return fmt.Errorf("tour ID is required")
	}
	if b.Persons <= 0 {
		return fmt.Errorf("persons must be positive")
	}
	if b.BookingDate.IsZero() {
		return fmt.Errorf("booking date is required")
	}
	return nil
}

type CreateBookingRequest struct {
	TourID      string    `json:"tour_id" binding:"required"`
	Persons     int       `json:"persons" binding:"required,gt=0"`
	BookingDate time.Time `json:"booking_date" binding:"required"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
