package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
)

type tourRepository struct {
	BaseRepository
}

func NewTourRepository(base BaseRepository) repository.TourRepository {
	return &tourRepository{base}
}

func (r *tourRepository) Create(ctx context.Context, tour *model.Tour) error {
	query := `
		INSERT INTO tours (
			id, title, description, price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	tour.ID = uuid.New()
	tour.CreatedAt = time.Now()
	tour.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		tour.ID,
		tour.Title,
		tour.Description,
		tour.Price,
		tour.CreatedAt,
		tour.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}

	return nil
}

func (r *tourRepository) Get(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	query := `
		SELECT * FROM tours
		WHERE id = $1
	`

	var tour model.Tour
	if err := r.db.GetContext(ctx, &tour, query, id); err != nil {
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}

	return &tour, nil
}

func (r *tourRepository) List(ctx context.Context) ([]*model.Tour, error) {
	query := `
		SELECT * FROM tours
		ORDER BY created_at DESC
	`

	tours := []*model.Tour{}
	if err := r.db.SelectContext(ctx, &tours, query); err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}

	return tours, nil
}
