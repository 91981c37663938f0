package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/cadefab1n/cardapio-backend/api/responses"
	"github.com/cadefab1n/cardapio-backend/api/validators"
	"github.com/cadefab1n/cardapio-backend/internal/restaurants"
	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/cadefab1n/cardapio-backend/pkg/logger"
	"github.com/google/uuid"
)

type restaurantResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	WhatsApp    string    `json:"whatsapp"`
	Description *string   `json:"description,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	Address     *string   `json:"address,omitempty"`
	IsOpen      bool      `json:"is_open"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newRestaurantResponse(restaurant *models.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		WhatsApp:    restaurant.WhatsApp,
		Description: restaurant.Description,
		LogoURL:     restaurant.LogoURL,
		Address:     restaurant.Address,
		IsOpen:      restaurant.IsOpen,
		UpdatedAt:   restaurant.UpdatedAt,
	}
}

type upsertRestaurantRequest struct {
	Name        string  `json:"name" validate:"required"`
	WhatsApp    string  `json:"whatsapp" validate:"required"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
	Address     *string `json:"address"`
	IsOpen      *bool   `json:"is_open"`
}

type setOpenRequest struct {
	IsOpen *bool `json:"is_open" validate:"required"`
}

// PublicRestaurant returns the profile shown on the menu header.
func PublicRestaurant(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurant, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newRestaurantResponse(restaurant))
	}
}

// AdminUpsertRestaurant creates or replaces the restaurant profile.
func AdminUpsertRestaurant(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertRestaurantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		restaurant, err := svc.Upsert(r.Context(), restaurants.UpsertInput{
			Name:        payload.Name,
			WhatsApp:    payload.WhatsApp,
			Description: payload.Description,
			LogoURL:     payload.LogoURL,
			Address:     payload.Address,
			IsOpen:      payload.IsOpen,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newRestaurantResponse(restaurant))
	}
}

// AdminSetRestaurantOpen flips the open flag without touching the profile.
func AdminSetRestaurantOpen(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setOpenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		restaurant, err := svc.SetOpen(r.Context(), *payload.IsOpen)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newRestaurantResponse(restaurant))
	}
}

// resolveRestaurantID loads the single tenant's id for scoping catalog
// operations.
func resolveRestaurantID(ctx context.Context, svc restaurants.Service) (uuid.UUID, error) {
	restaurant, err := svc.Get(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if restaurant.ID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant profile not configured")
	}
	return restaurant.ID, nil
}
