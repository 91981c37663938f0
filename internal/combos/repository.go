package combos

import (
	"context"

	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists combos and their member items.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the combo with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Combo, error) {
	var combo models.Combo
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&combo, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &combo, nil
}

// List returns the restaurant's combos with items, newest last.
func (r *Repository) List(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]models.Combo, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var rows []models.Combo
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts the combo and its items in one statement chain.
func (r *Repository) Create(ctx context.Context, combo *models.Combo) (*models.Combo, error) {
	if err := r.db.WithContext(ctx).Create(combo).Error; err != nil {
		return nil, err
	}
	return combo, nil
}

// Update saves the combo row without touching items.
func (r *Repository) Update(ctx context.Context, combo *models.Combo) (*models.Combo, error) {
	err := r.db.WithContext(ctx).
		Omit("Items").
		Save(combo).
		Error
	if err != nil {
		return nil, err
	}
	return combo, nil
}

// ReplaceItems swaps the combo's member items.
func (r *Repository) ReplaceItems(ctx context.Context, comboID uuid.UUID, items []models.ComboItem) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("combo_id = ?", comboID).Delete(&models.ComboItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// Delete removes the combo and cascades to its items.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("combo_id = ?", id).Delete(&models.ComboItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Combo{}, "id = ?", id).Error
}
