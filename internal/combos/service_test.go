package combos

import (
	"context"
	"testing"

	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type sqliteTxRunner struct {
	db *gorm.DB
}

func (r sqliteTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupComboTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  restaurant_id TEXT NOT NULL,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price TEXT NOT NULL,
  image TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS combos (
  id TEXT PRIMARY KEY,
  restaurant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  image TEXT,
  original_price TEXT NOT NULL,
  combo_price TEXT NOT NULL,
  discount_percent INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS combo_items (
  id TEXT PRIMARY KEY,
  combo_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

type fixedProducts struct {
	rows []models.Product
}

func (f fixedProducts) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	byID := make(map[uuid.UUID]models.Product, len(f.rows))
	for _, row := range f.rows {
		byID[row.ID] = row
	}
	var out []models.Product
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func newComboTestService(t *testing.T, restaurantID uuid.UUID, products []models.Product) (Service, *gorm.DB) {
	t.Helper()
	conn := setupComboTestDB(t)
	svc, err := NewService(NewRepository(conn), fixedProducts{rows: products}, sqliteTxRunner{db: conn})
	require.NoError(t, err)
	return svc, conn
}

func catalogProduct(restaurantID uuid.UUID, price float64) models.Product {
	return models.Product{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Price:        decimal.NewFromFloat(price),
	}
}

func TestCreateComputesPricing(t *testing.T) {
	restaurantID := uuid.New()
	burger := catalogProduct(restaurantID, 18.5)
	drink := catalogProduct(restaurantID, 6)
	svc, _ := newComboTestService(t, restaurantID, []models.Product{burger, drink})

	combo, err := svc.Create(context.Background(), restaurantID, UpsertInput{
		Name:       "Combo Lanche",
		ComboPrice: decimal.NewFromFloat(19.6),
		Items: []ItemInput{
			{ProductID: burger.ID, Quantity: 1},
			{ProductID: drink.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, combo.OriginalPrice.Equal(decimal.NewFromFloat(24.5)))
	assert.True(t, combo.ComboPrice.Equal(decimal.NewFromFloat(19.6)))
	assert.Equal(t, 20, combo.DiscountPercent)
	require.Len(t, combo.Items, 2)
}

func TestCreateRequiresTwoDistinctProducts(t *testing.T) {
	restaurantID := uuid.New()
	burger := catalogProduct(restaurantID, 18.5)
	svc, _ := newComboTestService(t, restaurantID, []models.Product{burger})

	// Quantity alone does not make a bundle: one product twice is rejected.
	_, err := svc.Create(context.Background(), restaurantID, UpsertInput{
		Name:       "Dois Burgers",
		ComboPrice: decimal.NewFromFloat(30),
		Items:      []ItemInput{{ProductID: burger.ID, Quantity: 2}},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateValidation(t *testing.T) {
	restaurantID := uuid.New()
	burger := catalogProduct(restaurantID, 18.5)
	drink := catalogProduct(restaurantID, 6)
	other := catalogProduct(uuid.New(), 10)
	svc, _ := newComboTestService(t, restaurantID, []models.Product{burger, drink, other})
	ctx := context.Background()

	cases := []struct {
		name  string
		input UpsertInput
	}{
		{"blankName", UpsertInput{
			ComboPrice: decimal.NewFromInt(10),
			Items:      []ItemInput{{ProductID: burger.ID, Quantity: 2}},
		}},
		{"singleProduct", UpsertInput{
			Name:       "Só Um",
			ComboPrice: decimal.NewFromInt(10),
			Items:      []ItemInput{{ProductID: burger.ID, Quantity: 1}},
		}},
		{"duplicateProduct", UpsertInput{
			Name:       "Duplicado",
			ComboPrice: decimal.NewFromInt(10),
			Items: []ItemInput{
				{ProductID: burger.ID, Quantity: 1},
				{ProductID: burger.ID, Quantity: 1},
			},
		}},
		{"unknownProduct", UpsertInput{
			Name:       "Fantasma",
			ComboPrice: decimal.NewFromInt(10),
			Items: []ItemInput{
				{ProductID: burger.ID, Quantity: 1},
				{ProductID: uuid.New(), Quantity: 1},
			},
		}},
		{"foreignProduct", UpsertInput{
			Name:       "De Outra Loja",
			ComboPrice: decimal.NewFromInt(10),
			Items: []ItemInput{
				{ProductID: burger.ID, Quantity: 1},
				{ProductID: other.ID, Quantity: 1},
			},
		}},
		{"priceNotBelowOriginal", UpsertInput{
			Name:       "Sem Desconto",
			ComboPrice: decimal.NewFromFloat(24.5),
			Items: []ItemInput{
				{ProductID: burger.ID, Quantity: 1},
				{ProductID: drink.ID, Quantity: 1},
			},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, restaurantID, tc.input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestUpdateReplacesItemsAndReprices(t *testing.T) {
	restaurantID := uuid.New()
	burger := catalogProduct(restaurantID, 18.5)
	drink := catalogProduct(restaurantID, 6)
	dessert := catalogProduct(restaurantID, 12)
	svc, _ := newComboTestService(t, restaurantID, []models.Product{burger, drink, dessert})
	ctx := context.Background()

	created, err := svc.Create(ctx, restaurantID, UpsertInput{
		Name:       "Combo Lanche",
		ComboPrice: decimal.NewFromFloat(19.6),
		Items: []ItemInput{
			{ProductID: burger.ID, Quantity: 1},
			{ProductID: drink.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpsertInput{
		Name:       "Combo Completo",
		ComboPrice: decimal.NewFromFloat(30),
		Items: []ItemInput{
			{ProductID: burger.ID, Quantity: 1},
			{ProductID: dessert.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.True(t, updated.OriginalPrice.Equal(decimal.NewFromFloat(30.5)))
	require.Len(t, updated.Items, 2)

	reloaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Combo Completo", reloaded.Name)
	require.Len(t, reloaded.Items, 2)
}

func TestToggleAndDelete(t *testing.T) {
	restaurantID := uuid.New()
	burger := catalogProduct(restaurantID, 18.5)
	drink := catalogProduct(restaurantID, 6)
	svc, _ := newComboTestService(t, restaurantID, []models.Product{burger, drink})
	ctx := context.Background()

	created, err := svc.Create(ctx, restaurantID, UpsertInput{
		Name:       "Combo Lanche",
		ComboPrice: decimal.NewFromFloat(19.6),
		Items: []ItemInput{
			{ProductID: burger.ID, Quantity: 1},
			{ProductID: drink.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDiscountPercentRounding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		original float64
		combo    float64
		want     int
	}{
		{100, 80, 20},
		{24.5, 19.6, 20},
		{30, 29, 3},
		{10, 9.95, 1},
	}
	for _, tc := range cases {
		got := discountPercent(decimal.NewFromFloat(tc.original), decimal.NewFromFloat(tc.combo))
		assert.Equal(t, tc.want, got, "original %v combo %v", tc.original, tc.combo)
	}
}
