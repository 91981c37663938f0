package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/cadefab1n/cardapio-backend/pkg/enums"
)

// Promotion applies a percent or fixed discount to the listed products, or to
// the whole menu when ProductIDs is empty.
type Promotion struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID  uuid.UUID          `gorm:"column:restaurant_id;type:uuid;not null"`
	Name          string             `gorm:"column:name;not null"`
	Description   *string            `gorm:"column:description"`
	DiscountType  enums.DiscountType `gorm:"column:discount_type;not null"`
	DiscountValue decimal.Decimal    `gorm:"column:discount_value;type:numeric(10,2);not null"`
	ProductIDs    pq.StringArray     `gorm:"column:product_ids;type:text[]"`
	Active        bool               `gorm:"column:active;not null;default:true"`
	StartsAt      *time.Time         `gorm:"column:starts_at"`
	EndsAt        *time.Time         `gorm:"column:ends_at"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
