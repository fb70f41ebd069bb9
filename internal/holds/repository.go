package holds

import (
	"context"
	"errors"
	"time"

	"tablebook/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, hold *Hold) error
	GetByID(ctx context.Context, id uuid.UUID) (*Hold, error)

	// TransitionStatus flips a hold from one status to another and reports
	// whether any row changed, so state transitions stay conditional and
	// race-safe.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error)

	// ExpireBatch flips up to batchSize HELD holds with past expiry to
	// EXPIRED, oldest first, in a single statement. Returns rows affected.
	ExpireBatch(ctx context.Context, now time.Time, batchSize int) (int64, error)

	ListHeldByVenueDate(ctx context.Context, venueID uuid.UUID, localDate string) ([]Hold, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, hold *Hold) error {
	return r.db.WithContext(ctx).Create(hold).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Hold, error) {
	var hold Hold
	err := r.db.WithContext(ctx).First(&hold, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("hold %s not found", id)
		}
		return nil, err
	}
	return &hold, nil
}

func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Hold{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) ExpireBatch(ctx context.Context, now time.Time, batchSize int) (int64, error) {
	// Subquery keeps the UPDATE bounded while draining oldest-first; the
	// conditional WHERE makes concurrent sweepers redundant, not wrong.
	result := r.db.WithContext(ctx).Exec(`
		UPDATE holds SET status = ?, updated_at = ?
		WHERE id IN (
			SELECT id FROM holds
			WHERE status = ? AND expires_at < ?
			ORDER BY expires_at ASC
			LIMIT ?
		)`,
		StatusExpired, now, StatusHeld, now, batchSize,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repository) ListHeldByVenueDate(ctx context.Context, venueID uuid.UUID, localDate string) ([]Hold, error) {
	var held []Hold
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND local_date = ? AND status = ?", venueID, localDate, StatusHeld).
		Order("start_at ASC").
		Find(&held).Error
	return held, err
}
