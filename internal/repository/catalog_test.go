package repository

import (
	"testing"

	"crickstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductCategory{},
		&models.ProductImage{},
		&models.Attribute{},
		&models.ProductAttributeValue{},
	))

	return NewCatalog(db)
}

func TestFindCategoryBySlugOrName(t *testing.T) {
	catalog := newTestCatalog(t)

	missing, err := catalog.FindCategoryBySlugOrName("bats", "Bats")
	require.NoError(t, err)
	assert.Nil(t, missing, "absence is not an error")

	require.NoError(t, catalog.CreateCategory(&models.Category{Name: "Bats", Slug: "bats", IsActive: true}))

	bySlug, err := catalog.FindCategoryBySlugOrName("bats", "something else")
	require.NoError(t, err)
	require.NotNil(t, bySlug)

	byName, err := catalog.FindCategoryBySlugOrName("other-slug", "Bats")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, bySlug.ID, byName.ID)
}

func TestFindProductBySlugOrSKU(t *testing.T) {
	catalog := newTestCatalog(t)

	require.NoError(t, catalog.CreateProduct(&models.Product{Name: "SG Test Bat", Slug: "sg-test-bat", SKU: "SG-TB"}))

	bySKU, err := catalog.FindProductBySlugOrSKU("nope", "SG-TB")
	require.NoError(t, err)
	require.NotNil(t, bySKU)

	missing, err := catalog.FindProductBySlugOrSKU("nope", "also-nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSlugAndSKUExists(t *testing.T) {
	catalog := newTestCatalog(t)

	require.NoError(t, catalog.CreateProduct(&models.Product{Name: "A", Slug: "taken", SKU: "TAKEN"}))

	taken, err := catalog.SlugExists("taken")
	require.NoError(t, err)
	assert.True(t, taken)

	free, err := catalog.SlugExists("free")
	require.NoError(t, err)
	assert.False(t, free)

	taken, err = catalog.SKUExists("TAKEN")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestFindOrCreateAttributeDeduplicates(t *testing.T) {
	catalog := newTestCatalog(t)

	first, created, err := catalog.FindOrCreateAttribute("Size", "size")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := catalog.FindOrCreateAttribute("Size", "size")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestCounts(t *testing.T) {
	catalog := newTestCatalog(t)

	require.NoError(t, catalog.CreateCategory(&models.Category{Name: "Bats", Slug: "bats"}))
	require.NoError(t, catalog.CreateProduct(&models.Product{Name: "A", Slug: "a", SKU: "A"}))
	require.NoError(t, catalog.CreateImageRecord(&models.ProductImage{ProductID: "p", URL: "/images/products/bats/a-main.jpg"}))
	require.NoError(t, catalog.CreateImageRecord(&models.ProductImage{ProductID: "p", URL: "https://remote/fallback.jpg"}))

	categories, products, images, err := catalog.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), categories)
	assert.Equal(t, int64(1), products)
	assert.Equal(t, int64(2), images)
}
