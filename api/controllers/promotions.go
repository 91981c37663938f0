package controllers

import (
	"net/http"
	"time"

	"github.com/cadefab1n/cardapio-backend/api/responses"
	"github.com/cadefab1n/cardapio-backend/api/validators"
	"github.com/cadefab1n/cardapio-backend/internal/promotions"
	"github.com/cadefab1n/cardapio-backend/internal/restaurants"
	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	"github.com/cadefab1n/cardapio-backend/pkg/enums"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/cadefab1n/cardapio-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type upsertPromotionRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   *string         `json:"description"`
	DiscountType  string          `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue decimal.Decimal `json:"discount_value" validate:"required"`
	ProductIDs    []uuid.UUID     `json:"product_ids"`
	StartsAt      *time.Time      `json:"starts_at"`
	EndsAt        *time.Time      `json:"ends_at"`
	Active        *bool           `json:"active"`
}

func (req upsertPromotionRequest) toInput() (promotions.UpsertInput, error) {
	discountType, err := enums.ParseDiscountType(req.DiscountType)
	if err != nil {
		return promotions.UpsertInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type")
	}
	return promotions.UpsertInput{
		Name:          req.Name,
		Description:   req.Description,
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		ProductIDs:    req.ProductIDs,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		Active:        req.Active,
	}, nil
}

// PublicPromotions lists promotions currently inside their schedule window.
func PublicPromotions(svc promotions.Service, restaurantSvc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := resolveRestaurantID(r.Context(), restaurantSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), restaurantID, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		now := time.Now()
		current := make([]models.Promotion, 0, len(rows))
		for i := range rows {
			if promotions.InWindow(&rows[i], now) {
				current = append(current, rows[i])
			}
		}
		responses.WriteSuccess(w, current)
	}
}

// AdminListPromotions includes disabled and out-of-window promotions.
func AdminListPromotions(svc promotions.Service, restaurantSvc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := resolveRestaurantID(r.Context(), restaurantSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), restaurantID, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func AdminCreatePromotion(svc promotions.Service, restaurantSvc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := resolveRestaurantID(r.Context(), restaurantSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertPromotionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), restaurantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdatePromotion(svc promotions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "promotionID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertPromotionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminTogglePromotion(svc promotions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "promotionID"))
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

func AdminDeletePromotion(svc promotions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "promotionID"))
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
