package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Combo bundles two or more products at a discounted price. OriginalPrice is
// the sum of the member products at their catalog prices when the combo was
// last saved; DiscountPercent is derived from it and ComboPrice.
type Combo struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID    uuid.UUID       `gorm:"column:restaurant_id;type:uuid;not null"`
	Name            string          `gorm:"column:name;not null"`
	Description     *string         `gorm:"column:description"`
	Image           *string         `gorm:"column:image"`
	OriginalPrice   decimal.Decimal `gorm:"column:original_price;type:numeric(10,2);not null"`
	ComboPrice      decimal.Decimal `gorm:"column:combo_price;type:numeric(10,2);not null"`
	DiscountPercent int             `gorm:"column:discount_percent;not null;default:0"`
	Active          bool            `gorm:"column:active;not null;default:true"`
	Items           []ComboItem     `gorm:"foreignKey:ComboID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
