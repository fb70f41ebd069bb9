package venues

import (
	"context"
	"errors"

	"tablebook/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// GetVenueWithPolicy loads a venue with its full rule set in one fetch.
	GetVenueWithPolicy(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetTables(ctx context.Context, venueID uuid.UUID) ([]Table, error)
	GetTable(ctx context.Context, id uuid.UUID) (*Table, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetVenueWithPolicy(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).
		Preload("Shifts").
		Preload("PacingRules").
		Preload("BlackoutDates").
		Preload("ServiceBuffer").
		Preload("Tables").
		First(&venue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("venue %s not found", id)
		}
		return nil, err
	}
	return &venue, nil
}

func (r *repository) GetVenue(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).Preload("ServiceBuffer").First(&venue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("venue %s not found", id)
		}
		return nil, err
	}
	return &venue, nil
}

func (r *repository) GetTables(ctx context.Context, venueID uuid.UUID) ([]Table, error) {
	var tables []Table
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("label ASC").
		Find(&tables).Error
	return tables, err
}

func (r *repository) GetTable(ctx context.Context, id uuid.UUID) (*Table, error) {
	var table Table
	err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("table %s not found", id)
		}
		return nil, err
	}
	return &table, nil
}
