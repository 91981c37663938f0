package categories

import (
	"context"
	"testing"

	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCategoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  restaurant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  sort_order INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
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
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func seedCategory(t *testing.T, repo *Repository, restaurantID uuid.UUID, name string, sortOrder int, active bool) *models.Category {
	t.Helper()
	created, err := repo.Create(context.Background(), &models.Category{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         name,
		SortOrder:    sortOrder,
		Active:       active,
	})
	require.NoError(t, err)
	return created
}

func TestRepositoryListOrdersBySortOrder(t *testing.T) {
	repo := NewRepository(setupCategoryTestDB(t))
	restaurantID := uuid.New()

	seedCategory(t, repo, restaurantID, "Bebidas", 2, true)
	seedCategory(t, repo, restaurantID, "Lanches", 1, true)
	seedCategory(t, repo, restaurantID, "Sobremesas", 3, false)
	seedCategory(t, repo, uuid.New(), "Outra Loja", 1, true)

	rows, err := repo.List(context.Background(), restaurantID, false)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Lanches", rows[0].Name)
	assert.Equal(t, "Bebidas", rows[1].Name)
	assert.Equal(t, "Sobremesas", rows[2].Name)

	active, err := repo.List(context.Background(), restaurantID, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
}

func TestRepositoryMaxSortOrder(t *testing.T) {
	repo := NewRepository(setupCategoryTestDB(t))
	restaurantID := uuid.New()

	max, err := repo.MaxSortOrder(context.Background(), restaurantID)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	seedCategory(t, repo, restaurantID, "Lanches", 5, true)

	max, err = repo.MaxSortOrder(context.Background(), restaurantID)
	require.NoError(t, err)
	assert.Equal(t, 5, max)
}

func TestRepositoryCountProducts(t *testing.T) {
	conn := setupCategoryTestDB(t)
	repo := NewRepository(conn)
	restaurantID := uuid.New()
	category := seedCategory(t, repo, restaurantID, "Lanches", 1, true)

	count, err := repo.CountProducts(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, conn.Exec(
		`INSERT INTO products (id, restaurant_id, category_id, name, description, price) VALUES (?, ?, ?, 'X-Burger', '', '18.5')`,
		uuid.New().String(), restaurantID.String(), category.ID.String(),
	).Error)

	count, err = repo.CountProducts(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepositoryDelete(t *testing.T) {
	repo := NewRepository(setupCategoryTestDB(t))
	category := seedCategory(t, repo, uuid.New(), "Lanches", 1, true)

	require.NoError(t, repo.Delete(context.Background(), category.ID))

	_, err := repo.FindByID(context.Background(), category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
