package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Review is a user's rating of a tour.
type Review struct {
	Base
	UserID  uuid.UUID `json:"user_id" db:"user_id"`
	TourID  uuid.UUID `json:"tour_id" db:"tour_id"`
	Rating  int       `json:"rating" db:"rating"`
	Comment string    `json:"comment" db:"comment"`
}

func (r *Review) Validate() error {
	if r.UserID == uuid.Nil {
		return fmt.Errorf("user ID is required")
	}
	if r.TourID == uuid.Nil {
		return fmt.Errorf("tour ID is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

type CreateReviewRequest struct {
	TourID  string `json:"tour_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
