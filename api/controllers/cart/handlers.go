package cart

import (
	"net/http"
	"time"

	"github.com/cadefab1n/cardapio-backend/api/middleware"
	"github.com/cadefab1n/cardapio-backend/api/responses"
	"github.com/cadefab1n/cardapio-backend/api/validators"
	cartsvc "github.com/cadefab1n/cardapio-backend/internal/cart"
	"github.com/cadefab1n/cardapio-backend/internal/combos"
	"github.com/cadefab1n/cardapio-backend/internal/products"
	"github.com/cadefab1n/cardapio-backend/internal/promotions"
	"github.com/cadefab1n/cardapio-backend/internal/restaurants"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/cadefab1n/cardapio-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers groups the cart endpoints' dependencies.
type Handlers struct {
	Carts       *cartsvc.Manager
	Products    products.Service
	Combos      combos.Service
	Promotions  promotions.Service
	Restaurants restaurants.Service
	Logger      *logger.Logger
}

func sessionID(r *http.Request) (string, error) {
	id := middleware.CartSessionFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return id, nil
}

// Get returns the session's cart.
func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		responses.WriteError(r.Context(), h.Logger, w, err)
		return
	}
	store := h.Carts.Get(r.Context(), id)
	responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
}

// AddItem snapshots the product or combo into the cart. Quantities of an
// already-present line accumulate.
func (h Handlers) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		responses.WriteError(r.Context(), h.Logger, w, err)
		return
	}

	var payload addItemRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), h.Logger, w, err)
		return
	}
	if (payload.ProductID == nil) == (payload.ComboID == nil) {
		responses.WriteError(r.Context(), h.Logger, w,
			pkgerrors.New(pkgerrors.CodeValidation, "exactly one of product_id or combo_id is required"))
		return
	}

	input, err := h.resolveItem(r, payload)
	if err != nil {
		responses.WriteError(r.Context(), h.Logger, w, err)
		return
	}

	store := h.Carts.Get(r.Context(), id)
	store.AddItem(input, payload.Quantity)
	responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
}

// UpdateQuantity sets the line's quantity; zero or less removes it.
func (h Handlers) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		responses.WriteError(r.Context(), h.Logger, w, err)
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		responses.WriteError(r.Context(), h.Logger, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
		return
	}

	var payload updateQuantityRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), h.Logger, w, err)
		return
	}

	store := h.Carts.Get(r.Context(), id)
	store.UpdateQuantity(itemID, payload.Quantity)
	responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
}

// RemoveItem drops the line entirely regardless of quantity.
func (h Handlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		responses.WriteError(r.Context(), h.Logger, w, err)
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		responses.WriteError(r.Context(), h.Logger, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
		return
	}

	store := h.Carts.Get(r.Context(), id)
	store.RemoveItem(itemID)
	responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
}

// Clear empties the cart.
func (h Handlers) Clear(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		responses.WriteError(r.Context(), h.Logger, w, err)
		return
	}

	store := h.Carts.Get(r.Context(), id)
	store.Clear()
	responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
}

func (h Handlers) resolveItem(r *http.Request, payload addItemRequest) (cartsvc.ItemInput, error) {
	ctx := r.Context()

	if payload.ProductID != nil {
		product, err := h.Products.Get(ctx, *payload.ProductID)
		if err != nil {
			return cartsvc.ItemInput{}, err
		}
		if !product.Active {
			return cartsvc.ItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
		}
		return cartsvc.ItemInput{
			ID:    product.ID.String(),
			Name:  product.Name,
			Price: h.promotionalPrice(r, product.ID, product.Price),
			Image: product.Image,
		}, nil
	}

	combo, err := h.Combos.Get(ctx, *payload.ComboID)
	if err != nil {
		return cartsvc.ItemInput{}, err
	}
	if !combo.Active {
		return cartsvc.ItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "combo is not available")
	}
	return cartsvc.ItemInput{
		ID:    combo.ID.String(),
		Name:  combo.Name,
		Price: combo.ComboPrice,
		Image: combo.Image,
	}, nil
}

// promotionalPrice applies the best currently-running promotion. The cart
// keeps whatever price was in effect at add time.
func (h Handlers) promotionalPrice(r *http.Request, productID uuid.UUID, price decimal.Decimal) decimal.Decimal {
	if h.Promotions == nil || h.Restaurants == nil {
		return price
	}

	restaurant, err := h.Restaurants.Get(r.Context())
	if err != nil {
		return price
	}
	rows, err := h.Promotions.List(r.Context(), restaurant.ID, true)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn(r.Context(), "loading promotions for cart price failed")
		}
		return price
	}

	now := time.Now()
	best := price
	for i := range rows {
		promo := &rows[i]
		if !promotions.InWindow(promo, now) || !promotions.AppliesTo(promo, productID) {
			continue
		}
		if discounted := promotions.Apply(promo, price); discounted.LessThan(best) {
			best = discounted
		}
	}
	return best
}
