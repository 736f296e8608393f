package catalog

import (
	"context"
	"testing"

	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/db/models"
	pkgerrors "github.com/Ivnfdzz/PickNPlay-sub000/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	subcategories := `
CREATE TABLE IF NOT EXISTS subcategories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  unit_price TEXT NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  description TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  subcategory_id TEXT NOT NULL,
  tags TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(subcategories).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func newCatalogService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewProductRepository(db), NewCategoryRepository(db))
	require.NoError(t, err)
	return svc
}

func seedSubcategory(t *testing.T, db *gorm.DB, name string) *models.Subcategory {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: name + " parent"}
	require.NoError(t, db.Create(category).Error)
	subcategory := &models.Subcategory{ID: uuid.New(), Name: name, CategoryID: category.ID}
	require.NoError(t, db.Create(subcategory).Error)
	return subcategory
}

func TestCreateProduct(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	sub := seedSubcategory(t, db, "Strategy")

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:          "Carcassonne",
		UnitPrice:     decimal.RequireFromString("1800.00"),
		SubcategoryID: sub.ID,
		Tags:          []string{"tiles", "family"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Carcassonne", product.Name)
	assert.True(t, product.IsActive, "products default to active")
	assert.Equal(t, sub.ID, product.SubcategoryID)

	stored, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, stored.UnitPrice.Equal(decimal.RequireFromString("1800.00")))
}

func TestCreateProduct_duplicateName(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	sub := seedSubcategory(t, db, "Strategy")

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:          "Azul",
		UnitPrice:     decimal.RequireFromString("1500.00"),
		SubcategoryID: sub.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Name:          "Azul",
		UnitPrice:     decimal.RequireFromString("1600.00"),
		SubcategoryID: sub.ID,
	})
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestCreateProduct_unknownSubcategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:          "Orphan",
		UnitPrice:     decimal.RequireFromString("900.00"),
		SubcategoryID: uuid.New(),
	})
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCreateProduct_negativePrice(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	sub := seedSubcategory(t, db, "Strategy")

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:          "Freebie",
		UnitPrice:     decimal.RequireFromString("-1.00"),
		SubcategoryID: sub.ID,
	})
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUpdateProduct_partialFields(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	sub := seedSubcategory(t, db, "Strategy")

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:          "Splendor",
		UnitPrice:     decimal.RequireFromString("1400.00"),
		SubcategoryID: sub.ID,
	})
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("1550.00")
	inactive := false
	updated, err := svc.UpdateProduct(context.Background(), product.ID, UpdateProductInput{
		UnitPrice: &newPrice,
		IsActive:  &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Splendor", updated.Name, "name untouched by partial update")
	assert.True(t, updated.UnitPrice.Equal(newPrice))
	assert.False(t, updated.IsActive)
}

func TestSearchProducts_requiresTerm(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)

	_, err := svc.SearchProducts(context.Background(), "   ", 10)
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCategoryTree(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)

	category, err := svc.CreateCategory(context.Background(), "Board Games")
	require.NoError(t, err)

	subcategory, err := svc.CreateSubcategory(context.Background(), category.ID, "Eurogames")
	require.NoError(t, err)
	assert.Equal(t, category.ID, subcategory.CategoryID)

	listed, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Subcategories, 1)
	assert.Equal(t, "Eurogames", listed[0].Subcategories[0].Name)

	require.NoError(t, svc.DeleteSubcategory(context.Background(), subcategory.ID))

	listed, err = svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].Subcategories)
}

func TestCreateSubcategory_unknownCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)

	_, err := svc.CreateSubcategory(context.Background(), uuid.New(), "Dangling")
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
