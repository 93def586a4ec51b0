package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
)

type reviewRepository struct {
	BaseRepository
}

func NewReviewRepository(base BaseRepository) repository.ReviewRepository {
	return &reviewRepository{base}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, user_id, tour_id, rating, comment, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.UserID,
		review.TourID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) ListByTour(ctx context.Context, tourID uuid.UUID) ([]*model.Review, error) {
	query := `
		SELECT * FROM reviews
		WHERE tour_id = $1
		ORDER BY created_at DESC
	`

	reviews := []*model.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, tourID); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}
