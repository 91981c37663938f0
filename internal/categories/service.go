package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes category management for the menu.
type Service interface {
	List(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]models.Category, error)
	Create(ctx context.Context, restaurantID uuid.UUID, input CreateInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error)
	Toggle(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateInput holds the validated payload to create a category.
type CreateInput struct {
	Name      string
	SortOrder *int
}

// UpdateInput holds optional mutation values for a category.
type UpdateInput struct {
	Name      *string
	SortOrder *int
	Active    *bool
}

type service struct {
	repo *Repository
}

// NewService constructs a category service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]models.Category, error) {
	rows, err := s.repo.List(ctx, restaurantID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return rows, nil
}

// Create appends the category at the end of the menu unless a sort order is
// given.
func (s *service) Create(ctx context.Context, restaurantID uuid.UUID, input CreateInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		max, err := s.repo.MaxSortOrder(ctx, restaurantID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve sort order")
		}
		sortOrder = max + 1
	}

	category := &models.Category{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         name,
		SortOrder:    sortOrder,
		Active:       true,
	}
	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		category.Name = name
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.Active != nil {
		category.Active = *input.Active
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update category")
	}
	return updated, nil
}

// Toggle flips the category's visibility on the public menu.
func (s *service) Toggle(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Active = !category.Active

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle category")
	}
	return updated, nil
}

// Delete refuses to remove a category that still has products.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count category products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category still has products")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete category")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}
	return category, nil
}
