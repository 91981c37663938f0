package restaurants

import (
	"context"
	"testing"

	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupRestaurantTestDB(t)))
	require.NoError(t, err)
	return svc
}

func TestServiceGetWithoutProfile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceUpsertCreatesThenUpdates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, UpsertInput{Name: "  Cantina  ", WhatsApp: "(11) 98765-4321"})
	require.NoError(t, err)
	assert.Equal(t, "Cantina", created.Name)
	assert.Equal(t, "5511987654321", created.WhatsApp, "number must be stored normalized")
	assert.True(t, created.IsOpen)

	closed := false
	updated, err := svc.Upsert(ctx, UpsertInput{Name: "Cantina Nova", WhatsApp: "5511987654321", IsOpen: &closed})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "second upsert must not create a new row")
	assert.Equal(t, "Cantina Nova", updated.Name)
	assert.False(t, updated.IsOpen)
}

func TestServiceUpsertValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, UpsertInput{Name: "   ", WhatsApp: "5511987654321"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Upsert(ctx, UpsertInput{Name: "Cantina", WhatsApp: "---"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceSetOpen(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, UpsertInput{Name: "Cantina", WhatsApp: "5511987654321"})
	require.NoError(t, err)

	updated, err := svc.SetOpen(ctx, false)
	require.NoError(t, err)
	assert.False(t, updated.IsOpen)

	updated, err = svc.SetOpen(ctx, true)
	require.NoError(t, err)
	assert.True(t, updated.IsOpen)
}
