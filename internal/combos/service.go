package combos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes combo management. A combo bundles at least two distinct
// products at a price below the sum of their catalog prices.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Combo, error)
	List(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]models.Combo, error)
	Create(ctx context.Context, restaurantID uuid.UUID, input UpsertInput) (*models.Combo, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Combo, error)
	Toggle(ctx context.Context, id uuid.UUID) (*models.Combo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemInput selects one product with a quantity for the combo.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// UpsertInput holds the validated combo payload. Create and Update share it
// because the pricing fields are always recomputed from the items.
type UpsertInput struct {
	Name        string
	Description *string
	Image       *string
	ComboPrice  decimal.Decimal
	Items       []ItemInput
	Active      *bool
}

type productLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     *Repository
	products productLoader
	dbClient txRunner
}

// NewService constructs a combo service instance. The txRunner is satisfied
// by the shared db client.
func NewService(repo *Repository, products productLoader, dbClient txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("combo repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, products: products, dbClient: dbClient}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Combo, error) {
	return s.load(ctx, id)
}

func (s *service) List(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]models.Combo, error) {
	rows, err := s.repo.List(ctx, restaurantID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list combos")
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, restaurantID uuid.UUID, input UpsertInput) (*models.Combo, error) {
	pricing, items, err := s.resolvePricing(ctx, restaurantID, input)
	if err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	combo := &models.Combo{
		ID:              uuid.New(),
		RestaurantID:    restaurantID,
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Image:           input.Image,
		OriginalPrice:   pricing.original,
		ComboPrice:      input.ComboPrice,
		DiscountPercent: pricing.discountPercent,
		Active:          active,
	}
	for i := range items {
		items[i].ComboID = combo.ID
	}
	combo.Items = items

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, combo)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create combo")
	}
	return combo, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Combo, error) {
	combo, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	pricing, items, err := s.resolvePricing(ctx, combo.RestaurantID, input)
	if err != nil {
		return nil, err
	}

	combo.Name = strings.TrimSpace(input.Name)
	combo.Description = input.Description
	combo.Image = input.Image
	combo.OriginalPrice = pricing.original
	combo.ComboPrice = input.ComboPrice
	combo.DiscountPercent = pricing.discountPercent
	if input.Active != nil {
		combo.Active = *input.Active
	}
	for i := range items {
		items[i].ComboID = combo.ID
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Update(ctx, combo); err != nil {
			return err
		}
		return txRepo.ReplaceItems(ctx, combo.ID, items)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update combo")
	}

	combo.Items = items
	return combo, nil
}

func (s *service) Toggle(ctx context.Context, id uuid.UUID) (*models.Combo, error) {
	combo, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	combo.Active = !combo.Active

	updated, err := s.repo.Update(ctx, combo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle combo")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete combo")
	}
	return nil
}

type comboPricing struct {
	original        decimal.Decimal
	discountPercent int
}

// resolvePricing validates the items against the catalog and derives the
// original price and discount percent.
func (s *service) resolvePricing(ctx context.Context, restaurantID uuid.UUID, input UpsertInput) (comboPricing, []models.ComboItem, error) {
	if strings.TrimSpace(input.Name) == "" {
		return comboPricing{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.ComboPrice.IsNegative() || input.ComboPrice.IsZero() {
		return comboPricing{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "combo_price must be positive")
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	seen := make(map[uuid.UUID]bool, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return comboPricing{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
		}
		if item.Quantity <= 0 {
			return comboPricing{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if seen[item.ProductID] {
			return comboPricing{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate product in combo")
		}
		seen[item.ProductID] = true
		ids = append(ids, item.ProductID)
	}
	// A bundle of a single product is just a quantity, not a combo.
	if len(ids) < 2 {
		return comboPricing{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "combo needs at least two distinct products")
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return comboPricing{}, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load combo products")
	}
	prices := make(map[uuid.UUID]decimal.Decimal, len(products))
	for _, product := range products {
		if product.RestaurantID != restaurantID {
			return comboPricing{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "product belongs to another restaurant")
		}
		prices[product.ID] = product.Price
	}

	original := decimal.Zero
	items := make([]models.ComboItem, 0, len(input.Items))
	for _, item := range input.Items {
		price, ok := prices[item.ProductID]
		if !ok {
			return comboPricing{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "product does not exist")
		}
		original = original.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, models.ComboItem{
			ID:        uuid.New(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if input.ComboPrice.GreaterThanOrEqual(original) {
		return comboPricing{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "combo_price must be below the sum of product prices")
	}

	return comboPricing{
		original:        original,
		discountPercent: discountPercent(original, input.ComboPrice),
	}, items, nil
}

// discountPercent rounds the saving to the nearest whole percent.
func discountPercent(original, comboPrice decimal.Decimal) int {
	if original.IsZero() {
		return 0
	}
	saving := original.Sub(comboPrice).Div(original).Mul(decimal.NewFromInt(100))
	return int(saving.Round(0).IntPart())
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Combo, error) {
	combo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "combo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load combo")
	}
	return combo, nil
}
