package clothing

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knagase/wardrobe-api/pkg/db/models"
)

const seasonMatchClause = `EXISTS (
  SELECT 1 FROM clothing_seasons cs
  WHERE cs.clothing_id = clothing.id AND cs.season_id IN ?
)`

// Repository encapsulates clothing persistence, including the season join
// rows, which have no life of their own outside an item.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of the user's items plus the total match count. The
// count runs against the same filter, independent of page boundaries.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.Clothing, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Clothing{}).
		Where("clothing.user_id = ?", userID)

	base = applyFilter(base, filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Clothing
	err := base.Session(&gorm.Session{}).
		Preload("Room").
		Preload("Seasons.Season").
		Order(filter.orderClause()).
		Order("clothing.id DESC").
		Limit(filter.Page.Limit).
		Offset(filter.Page.Offset()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func applyFilter(query *gorm.DB, filter ListFilter) *gorm.DB {
	switch filter.RoomScope {
	case RoomScopeUnassigned:
		query = query.Where("clothing.room_id IS NULL")
	case RoomScopeSpecific:
		query = query.Where("clothing.room_id = ?", filter.RoomID)
	}

	if len(filter.SeasonIDs) > 0 {
		query = query.Where(seasonMatchClause, filter.SeasonIDs)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where(`LOWER(clothing.name) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(search)+"%")
	}

	return query
}

// escapeLike neutralizes LIKE metacharacters so user input only ever matches
// literally.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// FindByID loads one item with its room and season tags, regardless of owner.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Clothing, error) {
	var item models.Clothing
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Seasons.Season").
		First(&item, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts the item and its season rows in one transaction.
func (r *Repository) Create(ctx context.Context, item *models.Clothing, seasonIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Room", "Seasons").Create(item).Error; err != nil {
			return err
		}
		return insertSeasonRows(tx, item.ID, seasonIDs)
	})
}

// Update persists the item's columns and, when replaceSeasons is set, swaps
// the full season set: delete all rows, insert the new ones.
func (r *Repository) Update(ctx context.Context, item *models.Clothing, replaceSeasons bool, seasonIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Clothing{}).
			Where("id = ?", item.ID).
			Updates(map[string]any{
				"name":          item.Name,
				"description":   item.Description,
				"color":         item.Color,
				"size":          item.Size,
				"brand":         item.Brand,
				"purchase_date": item.PurchaseDate,
				"image_url":     item.ImageURL,
				"room_id":       item.RoomID,
			}).
			Error
		if err != nil {
			return err
		}

		if !replaceSeasons {
			return nil
		}

		if err := tx.Where("clothing_id = ?", item.ID).Delete(&models.ClothingSeason{}).Error; err != nil {
			return err
		}
		return insertSeasonRows(tx, item.ID, seasonIDs)
	})
}

func insertSeasonRows(tx *gorm.DB, clothingID uuid.UUID, seasonIDs []uuid.UUID) error {
	if len(seasonIDs) == 0 {
		return nil
	}
	rows := make([]models.ClothingSeason, 0, len(seasonIDs))
	seen := make(map[uuid.UUID]struct{}, len(seasonIDs))
	for _, id := range seasonIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, models.ClothingSeason{ClothingID: clothingID, SeasonID: id})
	}
	return tx.Create(&rows).Error
}

// Delete removes the item; season rows cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Clear the join rows explicitly rather than leaning on the FK cascade.
		if err := tx.Where("clothing_id = ?", id).Delete(&models.ClothingSeason{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Clothing{}, "id = ?", id).Error
	})
}
