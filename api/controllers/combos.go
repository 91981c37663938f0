package controllers

import (
	"net/http"

	"github.com/cadefab1n/cardapio-backend/api/responses"
	"github.com/cadefab1n/cardapio-backend/api/validators"
	"github.com/cadefab1n/cardapio-backend/internal/combos"
	"github.com/cadefab1n/cardapio-backend/internal/restaurants"
	"github.com/cadefab1n/cardapio-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type comboItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type upsertComboRequest struct {
	Name        string             `json:"name" validate:"required"`
	Description *string            `json:"description"`
	Image       *string            `json:"image"`
	ComboPrice  decimal.Decimal    `json:"combo_price" validate:"required"`
	Items       []comboItemRequest `json:"items" validate:"required,min=1,dive"`
	Active      *bool              `json:"active"`
}

func (req upsertComboRequest) toInput() combos.UpsertInput {
	items := make([]combos.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, combos.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return combos.UpsertInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		ComboPrice:  req.ComboPrice,
		Items:       items,
		Active:      req.Active,
	}
}

// PublicCombos lists active combos for the menu.
func PublicCombos(svc combos.Service, restaurantSvc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return listCombos(svc, restaurantSvc, logg, true)
}

// AdminListCombos includes paused combos.
func AdminListCombos(svc combos.Service, restaurantSvc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return listCombos(svc, restaurantSvc, logg, false)
}

func listCombos(svc combos.Service, restaurantSvc restaurants.Service, logg *logger.Logger, activeOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := resolveRestaurantID(r.Context(), restaurantSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), restaurantID, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func AdminCreateCombo(svc combos.Service, restaurantSvc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := resolveRestaurantID(r.Context(), restaurantSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertComboRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), restaurantID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdateCombo(svc combos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "comboID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertComboRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminToggleCombo(svc combos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "comboID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		toggled, err := svc.Toggle(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toggled)
	}
}

func AdminDeleteCombo(svc combos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "comboID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
