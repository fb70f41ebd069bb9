package reservations

import (
	"context"
	"errors"

	"tablebook/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	Create(ctx context.Context, reservation *Reservation) error
	ListBlockingByVenueDate(ctx context.Context, venueID uuid.UUID, localDate string) ([]Reservation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Preload("Assignments").
		First(&reservation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reservation %s not found", id)
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) Create(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) ListBlockingByVenueDate(ctx context.Context, venueID uuid.UUID, localDate string) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Preload("Assignments").
		Where("venue_id = ? AND local_date = ? AND status IN ?", venueID, localDate, BlockingStatuses).
		Order("start_at ASC").
		Find(&reservations).Error
	return reservations, err
}
