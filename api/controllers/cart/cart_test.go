package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cadefab1n/cardapio-backend/api/middleware"
	cartsvc "github.com/cadefab1n/cardapio-backend/internal/cart"
	"github.com/cadefab1n/cardapio-backend/internal/combos"
	"github.com/cadefab1n/cardapio-backend/internal/products"
	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/cadefab1n/cardapio-backend/pkg/pagination"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducts struct {
	byID map[uuid.UUID]*models.Product
}

func (s stubProducts) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.byID[id]; ok {
		return product, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s stubProducts) List(ctx context.Context, restaurantID uuid.UUID, filters products.ListFilters, page pagination.Params) (*products.ListResult, error) {
	return &products.ListResult{}, nil
}

func (s stubProducts) Create(ctx context.Context, restaurantID uuid.UUID, input products.CreateInput) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s stubProducts) Update(ctx context.Context, id uuid.UUID, input products.UpdateInput) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s stubProducts) Toggle(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s stubProducts) Delete(ctx context.Context, id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

type stubCombos struct {
	byID map[uuid.UUID]*models.Combo
}

func (s stubCombos) Get(ctx context.Context, id uuid.UUID) (*models.Combo, error) {
	if combo, ok := s.byID[id]; ok {
		return combo, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "combo not found")
}

func (s stubCombos) List(ctx context.Context, restaurantID uuid.UUID, activeOnly bool) ([]models.Combo, error) {
	return nil, nil
}

func (s stubCombos) Create(ctx context.Context, restaurantID uuid.UUID, input combos.UpsertInput) (*models.Combo, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s stubCombos) Update(ctx context.Context, id uuid.UUID, input combos.UpsertInput) (*models.Combo, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s stubCombos) Toggle(ctx context.Context, id uuid.UUID) (*models.Combo, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s stubCombos) Delete(ctx context.Context, id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func testRouter(h Handlers, sessionID string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithCartSession(req.Context(), sessionID)))
		})
	})
	r.Get("/cart", h.Get)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{itemID}", h.UpdateQuantity)
	r.Delete("/cart/items/{itemID}", h.RemoveItem)
	r.Delete("/cart", h.Clear)
	return r
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var body struct {
		Data cartResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data
}

func newTestHandlers(p stubProducts, c stubCombos) Handlers {
	return Handlers{
		Carts:    cartsvc.NewManager(cartsvc.ManagerOptions{}),
		Products: p,
		Combos:   c,
	}
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	handlers := newTestHandlers(stubProducts{byID: map[uuid.UUID]*models.Product{
		productID: {ID: productID, Name: "X-Burger", Price: decimal.NewFromFloat(18.5), Active: true},
	}}, stubCombos{})
	router := testRouter(handlers, uuid.NewString())

	body := `{"product_id":"` + productID.String() + `","quantity":2}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decodeCart(t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, productID.String(), cart.Items[0].ID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.TotalItems)
	assert.True(t, cart.TotalPrice.Equal(decimal.NewFromFloat(37)))
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	handlers := newTestHandlers(stubProducts{byID: map[uuid.UUID]*models.Product{
		productID: {ID: productID, Name: "X-Burger", Price: decimal.NewFromFloat(10), Active: true},
	}}, stubCombos{})
	sessionID := uuid.NewString()
	router := testRouter(handlers, sessionID)

	body := `{"product_id":"` + productID.String() + `","quantity":1}`
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	cart := decodeCart(t, rec)
	require.Len(t, cart.Items, 1, "same product twice must stay one line")
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, cart.TotalPrice.Equal(decimal.NewFromFloat(30)))
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	handlers := newTestHandlers(stubProducts{byID: map[uuid.UUID]*models.Product{
		productID: {ID: productID, Name: "Pausado", Price: decimal.NewFromFloat(10), Active: false},
	}}, stubCombos{})
	router := testRouter(handlers, uuid.NewString())

	body := `{"product_id":"` + productID.String() + `","quantity":1}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItemRequiresExactlyOneTarget(t *testing.T) {
	t.Parallel()

	handlers := newTestHandlers(stubProducts{}, stubCombos{})
	router := testRouter(handlers, uuid.NewString())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"quantity":1}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddComboUsesComboPrice(t *testing.T) {
	t.Parallel()

	comboID := uuid.New()
	handlers := newTestHandlers(stubProducts{}, stubCombos{byID: map[uuid.UUID]*models.Combo{
		comboID: {
			ID:         comboID,
			Name:       "Combo Lanche",
			ComboPrice: decimal.NewFromFloat(19.6),
			Active:     true,
		},
	}})
	router := testRouter(handlers, uuid.NewString())

	body := `{"combo_id":"` + comboID.String() + `","quantity":1}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.TotalPrice.Equal(decimal.NewFromFloat(19.6)))
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	handlers := newTestHandlers(stubProducts{byID: map[uuid.UUID]*models.Product{
		productID: {ID: productID, Name: "X-Burger", Price: decimal.NewFromFloat(10), Active: true},
	}}, stubCombos{})
	router := testRouter(handlers, uuid.NewString())

	body := `{"product_id":"` + productID.String() + `","quantity":2}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/cart/items/"+productID.String(), strings.NewReader(`{"quantity":0}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decodeCart(t, rec)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalPrice.IsZero())
}

func TestRemoveAndClear(t *testing.T) {
	t.Parallel()

	first := uuid.New()
	second := uuid.New()
	handlers := newTestHandlers(stubProducts{byID: map[uuid.UUID]*models.Product{
		first:  {ID: first, Name: "X-Burger", Price: decimal.NewFromFloat(10), Active: true},
		second: {ID: second, Name: "Guaraná", Price: decimal.NewFromFloat(6), Active: true},
	}}, stubCombos{})
	router := testRouter(handlers, uuid.NewString())

	for _, id := range []uuid.UUID{first, second} {
		body := `{"product_id":"` + id.String() + `","quantity":1}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart/items/"+first.String(), nil))
	cart := decodeCart(t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, second.String(), cart.Items[0].ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart", nil))
	cart = decodeCart(t, rec)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItems)
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	handlers := newTestHandlers(stubProducts{byID: map[uuid.UUID]*models.Product{
		productID: {ID: productID, Name: "X-Burger", Price: decimal.NewFromFloat(10), Active: true},
	}}, stubCombos{})

	routerA := testRouter(handlers, uuid.NewString())
	routerB := testRouter(handlers, uuid.NewString())

	body := `{"product_id":"` + productID.String() + `","quantity":1}`
	rec := httptest.NewRecorder()
	routerA.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	routerB.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	cart := decodeCart(t, rec)
	assert.Empty(t, cart.Items)
}
