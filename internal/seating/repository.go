package seating

import (
	"context"
	"fmt"

	"tablebook/internal/reservations"
	"tablebook/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the write side of the allocator. Every mutation runs inside
// a serializable transaction handle passed in by the service, so the commit
// either lands whole or not at all.
type Repository interface {
	InSerializableTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	AcquireSlotLocks(ctx context.Context, tx *gorm.DB, keys []string) error
	CurrentAssignments(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID) ([]uuid.UUID, error)
	SetPrimaryTable(ctx context.Context, tx *gorm.DB, reservationID, tableID uuid.UUID) error
	ReplaceAssignments(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID, tableIDs []uuid.UUID) error
	GetReservation(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID) (*reservations.Reservation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InSerializableTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn, database.SerializableTxOptions())
}

// AcquireSlotLocks sorts the keys deterministically before locking so two
// overlapping requests can never deadlock on lock order.
func (r *repository) AcquireSlotLocks(ctx context.Context, tx *gorm.DB, keys []string) error {
	return database.AcquireTxAdvisoryLocks(ctx, tx, database.SortLockKeys(keys))
}

func (r *repository) CurrentAssignments(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.WithContext(ctx).
		Model(&reservations.TableAssignment{}).
		Where("reservation_id = ?", reservationID).
		Pluck("table_id", &ids).Error
	return ids, err
}

func (r *repository) SetPrimaryTable(ctx context.Context, tx *gorm.DB, reservationID, tableID uuid.UUID) error {
	err := tx.WithContext(ctx).
		Model(&reservations.Reservation{}).
		Where("id = ?", reservationID).
		Update("primary_table_id", tableID).Error
	if err != nil {
		return fmt.Errorf("failed to set primary table: %w", err)
	}
	return nil
}

func (r *repository) ReplaceAssignments(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID, tableIDs []uuid.UUID) error {
	err := tx.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Delete(&reservations.TableAssignment{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	rows := make([]reservations.TableAssignment, 0, len(tableIDs))
	for _, tableID := range tableIDs {
		rows = append(rows, reservations.TableAssignment{
			ReservationID: reservationID,
			TableID:       tableID,
		})
	}
	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create assignments: %w", err)
	}
	return nil
}

func (r *repository) GetReservation(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID) (*reservations.Reservation, error) {
	var reservation reservations.Reservation
	err := tx.WithContext(ctx).
		Preload("Assignments").
		First(&reservation, "id = ?", reservationID).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}
