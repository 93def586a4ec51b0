package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
)

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(base BaseRepository) repository.BookingRepository {
	return &bookingRepository{base}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, user_id, tour_id, persons, booking_date, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	booking.ID = uuid.New()
	booking.Status = model.BookingStatusPending
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.TourID,
		booking.Persons,
		booking.BookingDate,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE id = $1
	`

	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// UpdateStatus transitions the booking inside a transaction: the row is
// locked, mutated, and returned in its committed shape so the caller fans
// out from exactly what was written.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (booking *model.Booking, err error) {
	defer func(start time.Time) { r.observe("booking_update_status", start, err) }(time.Now())

	var row model.Booking
	err = r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &row, `SELECT * FROM bookings WHERE id = $1 FOR UPDATE`, id); err != nil {
			return err
		}

		row.Status = status
		row.UpdatedAt = time.Now()

		query := `
			UPDATE bookings
			SET status = $1, updated_at = $2
			WHERE id = $3
		`
		if _, err := tx.ExecContext(ctx, query, row.Status, row.UpdatedAt, id); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &row, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	bookings := []*model.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}
