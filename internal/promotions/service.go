package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	"github.com/cadefab1n/cardapio-backend/pkg/enums"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes promotion management and price preview arithmetic.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Promotion, error)
	List(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]models.Promotion, error)
	Create(ctx context.Context, restaurantID uuid.UUID, input UpsertInput) (*models.Promotion, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Promotion, error)
	Toggle(ctx context.Context, id uuid.UUID) (*models.Promotion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpsertInput holds the validated promotion payload.
type UpsertInput struct {
	Name          string
	Description   *string
	DiscountType  enums.DiscountType
	DiscountValue decimal.Decimal
	ProductIDs    []uuid.UUID
	StartsAt      *time.Time
	EndsAt        *time.Time
	Active        *bool
}

type productChecker interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type service struct {
	repo     *Repository
	products productChecker
}

// NewService constructs a promotion service instance.
func NewService(repo *Repository, products productChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("promotion repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Promotion, error) {
	return s.load(ctx, id)
}

func (s *service) List(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]models.Promotion, error) {
	rows, err := s.repo.List(ctx, restaurantID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list promotions")
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, restaurantID uuid.UUID, input UpsertInput) (*models.Promotion, error) {
	if err := s.validate(ctx, restaurantID, input); err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	promotion := &models.Promotion{
		ID:            uuid.New(),
		RestaurantID:  restaurantID,
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		ProductIDs:    toStringArray(input.ProductIDs),
		StartsAt:      input.StartsAt,
		EndsAt:        input.EndsAt,
		Active:        active,
	}
	created, err := s.repo.Create(ctx, promotion)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create promotion")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Promotion, error) {
	promotion, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, promotion.RestaurantID, input); err != nil {
		return nil, err
	}

	promotion.Name = strings.TrimSpace(input.Name)
	promotion.Description = input.Description
	promotion.DiscountType = input.DiscountType
	promotion.DiscountValue = input.DiscountValue
	promotion.ProductIDs = toStringArray(input.ProductIDs)
	promotion.StartsAt = input.StartsAt
	promotion.EndsAt = input.EndsAt
	if input.Active != nil {
		promotion.Active = *input.Active
	}

	updated, err := s.repo.Update(ctx, promotion)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update promotion")
	}
	return updated, nil
}

func (s *service) Toggle(ctx context.Context, id uuid.UUID) (*models.Promotion, error) {
	promotion, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	promotion.Active = !promotion.Active

	updated, err := s.repo.Update(ctx, promotion)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle promotion")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete promotion")
	}
	return nil
}

func (s *service) validate(ctx context.Context, restaurantID uuid.UUID, input UpsertInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.DiscountType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid discount type")
	}
	if input.DiscountValue.IsNegative() || input.DiscountValue.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount_value must be positive")
	}
	if input.DiscountType == enums.DiscountTypePercent && input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "percent discount cannot exceed 100")
	}
	if input.StartsAt != nil && input.EndsAt != nil && !input.EndsAt.After(*input.StartsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "ends_at must be after starts_at")
	}

	if len(input.ProductIDs) > 0 {
		products, err := s.products.FindByIDs(ctx, input.ProductIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load promotion products")
		}
		known := make(map[uuid.UUID]bool, len(products))
		for _, product := range products {
			if product.RestaurantID != restaurantID {
				return pkgerrors.New(pkgerrors.CodeValidation, "product belongs to another restaurant")
			}
			known[product.ID] = true
		}
		for _, id := range input.ProductIDs {
			if !known[id] {
				return pkgerrors.New(pkgerrors.CodeValidation, "product does not exist")
			}
		}
	}
	return nil
}

func toStringArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Promotion, error) {
	promotion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load promotion")
	}
	return promotion, nil
}
