package seasons

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knagase/wardrobe-api/pkg/db/models"
)

// Repository reads the fixed season catalog. Seasons are seeded by migration
// and never written at runtime.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all seasons in display order.
func (r *Repository) List(ctx context.Context) ([]models.Season, error) {
	var rows []models.Season
	err := r.db.WithContext(ctx).
		Order("display_order ASC").
		Find(&rows).
		Error
	return rows, err
}

// CountByIDs reports how many of the given season ids exist.
func (r *Repository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Season{}).
		Where("id IN ?", ids).
		Count(&count).
		Error
	return count, err
}
