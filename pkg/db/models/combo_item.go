package models

import (
	"github.com/google/uuid"
)

// ComboItem ties one product selection (with quantity) to a combo.
type ComboItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ComboID   uuid.UUID `gorm:"column:combo_id;type:uuid;not null"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
}
