package conflicts

import (
	"context"

	"tablebook/internal/holds"
	"tablebook/internal/reservations"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds the blocking-row loader on a *gorm.DB handle. Passing
// a transaction handle binds all reads to that transaction, which is how the
// allocator re-validates under lock.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) BlockingReservations(ctx context.Context, venueID uuid.UUID, localDate string) ([]reservations.Reservation, error) {
	var rows []reservations.Reservation
	err := r.db.WithContext(ctx).
		Preload("Assignments").
		Where("venue_id = ? AND local_date = ? AND status IN ?", venueID, localDate, reservations.BlockingStatuses).
		Order("start_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) HeldHolds(ctx context.Context, venueID uuid.UUID, localDate string) ([]holds.Hold, error) {
	var rows []holds.Hold
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND local_date = ? AND status = ?", venueID, localDate, holds.StatusHeld).
		Order("start_at ASC").
		Find(&rows).Error
	return rows, err
}
