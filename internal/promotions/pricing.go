package promotions

import (
	"time"

	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	"github.com/cadefab1n/cardapio-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InWindow reports whether the promotion is enabled and inside its schedule
// at the given instant. A missing bound is open-ended.
func InWindow(promotion *models.Promotion, now time.Time) bool {
	if promotion == nil || !promotion.Active {
		return false
	}
	if promotion.StartsAt != nil && now.Before(*promotion.StartsAt) {
		return false
	}
	if promotion.EndsAt != nil && now.After(*promotion.EndsAt) {
		return false
	}
	return true
}

// AppliesTo reports whether the promotion covers the product. An empty
// product list means the whole menu.
func AppliesTo(promotion *models.Promotion, productID uuid.UUID) bool {
	if promotion == nil {
		return false
	}
	if len(promotion.ProductIDs) == 0 {
		return true
	}
	id := productID.String()
	for _, candidate := range promotion.ProductIDs {
		if candidate == id {
			return true
		}
	}
	return false
}

// Apply returns the discounted price, never below zero. Fixed discounts
// subtract the value; percent discounts scale, rounded to cents.
func Apply(promotion *models.Promotion, price decimal.Decimal) decimal.Decimal {
	if promotion == nil {
		return price
	}
	var discounted decimal.Decimal
	switch promotion.DiscountType {
	case enums.DiscountTypeFixed:
		discounted = price.Sub(promotion.DiscountValue)
	case enums.DiscountTypePercent:
		factor := decimal.NewFromInt(1).Sub(promotion.DiscountValue.Div(decimal.NewFromInt(100)))
		discounted = price.Mul(factor).Round(2)
	default:
		return price
	}
	if discounted.IsNegative() {
		return decimal.Zero
	}
	return discounted
}
