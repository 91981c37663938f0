package restaurants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/cadefab1n/cardapio-backend/pkg/whatsapp"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes restaurant profile management.
type Service interface {
	Get(ctx context.Context) (*models.Restaurant, error)
	Upsert(ctx context.Context, input UpsertInput) (*models.Restaurant, error)
	SetOpen(ctx context.Context, open bool) (*models.Restaurant, error)
}

// UpsertInput holds the validated profile payload.
type UpsertInput struct {
	Name        string
	WhatsApp    string
	Description *string
	LogoURL     *string
	Address     *string
	IsOpen      *bool
}

type service struct {
	repo *Repository
}

// NewService constructs a restaurant service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("restaurant repository required")
	}
	return &service{repo: repo}, nil
}

// Get returns the restaurant profile.
func (s *service) Get(ctx context.Context) (*models.Restaurant, error) {
	restaurant, err := s.repo.First(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}
	if restaurant == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant profile not configured")
	}
	return restaurant, nil
}

// Upsert creates the profile on first save and updates it afterwards.
func (s *service) Upsert(ctx context.Context, input UpsertInput) (*models.Restaurant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	phone := whatsapp.NormalizePhone(input.WhatsApp)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp number is required")
	}

	restaurant, err := s.repo.First(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}

	isNew := restaurant == nil
	if isNew {
		restaurant = &models.Restaurant{ID: uuid.New(), IsOpen: true}
	}
	restaurant.Name = name
	restaurant.WhatsApp = phone
	restaurant.Description = input.Description
	restaurant.LogoURL = input.LogoURL
	restaurant.Address = input.Address
	if input.IsOpen != nil {
		restaurant.IsOpen = *input.IsOpen
	}

	if isNew {
		restaurant, err = s.repo.Create(ctx, restaurant)
	} else {
		restaurant, err = s.repo.Update(ctx, restaurant)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save restaurant")
	}
	return restaurant, nil
}

// SetOpen flips the open/closed flag shown on the public menu.
func (s *service) SetOpen(ctx context.Context, open bool) (*models.Restaurant, error) {
	restaurant, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	restaurant.IsOpen = open
	updated, err := s.repo.Update(ctx, restaurant)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update restaurant")
	}
	return updated, nil
}
