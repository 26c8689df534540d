package rooms

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knagase/wardrobe-api/pkg/db/models"
)

// Repository encapsulates room persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns the caller's rooms ordered by display order, then name.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Room, error) {
	var rows []models.Room
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("display_order ASC").
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads a room regardless of owner; the service decides whether the
// caller may see it.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// ExistsByName reports whether the user already has a room with the name,
// compared case-insensitively. excludeID skips the room being renamed.
func (r *Repository) ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, strings.TrimSpace(name))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *Repository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", room.ID).
		Updates(map[string]any{
			"name":          room.Name,
			"icon":          room.Icon,
			"display_order": room.DisplayOrder,
		}).
		Error
}

// Delete removes the room. Clothing rows pointing at it fall back to NULL via
// the foreign key's SET NULL action.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.Room{}, "id = ?", id).
		Error
}
