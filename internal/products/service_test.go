package products

import (
	"context"
	"testing"

	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB, uuid.UUID, uuid.UUID) {
	t.Helper()
	conn := setupProductTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	restaurantID := uuid.New()
	categoryID := uuid.New()
	require.NoError(t, conn.Exec(
		`INSERT INTO categories (id, restaurant_id, name) VALUES (?, ?, 'Lanches')`,
		categoryID.String(), restaurantID.String(),
	).Error)
	return svc, conn, restaurantID, categoryID
}

func TestServiceCreateProduct(t *testing.T) {
	svc, _, restaurantID, categoryID := newTestService(t)

	created, err := svc.Create(context.Background(), restaurantID, CreateInput{
		CategoryID:  categoryID,
		Name:        "  X-Burger  ",
		Description: "Pão, carne e queijo",
		Price:       decimal.NewFromFloat(18.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "X-Burger", created.Name)
	assert.True(t, created.Active)
	assert.True(t, created.Price.Equal(decimal.NewFromFloat(18.5)))
}

func TestServiceCreateValidation(t *testing.T) {
	svc, _, restaurantID, categoryID := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"blankName", CreateInput{CategoryID: categoryID, Name: " ", Price: decimal.NewFromInt(10)}},
		{"zeroPrice", CreateInput{CategoryID: categoryID, Name: "X", Price: decimal.Zero}},
		{"negativePrice", CreateInput{CategoryID: categoryID, Name: "X", Price: decimal.NewFromInt(-1)}},
		{"missingCategory", CreateInput{Name: "X", Price: decimal.NewFromInt(10)}},
		{"unknownCategory", CreateInput{CategoryID: uuid.New(), Name: "X", Price: decimal.NewFromInt(10)}},
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

func TestServiceUpdateProduct(t *testing.T) {
	svc, _, restaurantID, categoryID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, restaurantID, CreateInput{
		CategoryID: categoryID,
		Name:       "X-Burger",
		Price:      decimal.NewFromFloat(18.5),
	})
	require.NoError(t, err)

	newName := "X-Burger Duplo"
	newPrice := decimal.NewFromFloat(24.9)
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Name: &newName, Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "X-Burger Duplo", updated.Name)
	assert.True(t, updated.Price.Equal(newPrice))
}

func TestServiceToggleProduct(t *testing.T) {
	svc, _, restaurantID, categoryID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, restaurantID, CreateInput{
		CategoryID: categoryID,
		Name:       "X-Burger",
		Price:      decimal.NewFromFloat(18.5),
	})
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)
}

func TestServiceDeleteProduct(t *testing.T) {
	svc, _, restaurantID, categoryID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, restaurantID, CreateInput{
		CategoryID: categoryID,
		Name:       "X-Burger",
		Price:      decimal.NewFromFloat(18.5),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
