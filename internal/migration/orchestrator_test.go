package migration

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"crickstore/internal/events"
	"crickstore/internal/logger"
	"crickstore/internal/models"
	"crickstore/internal/services/woocommerce"
	"crickstore/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubFetcher struct {
	categories []woocommerce.Category
	products   []woocommerce.Product
	err        error
}

func (s *stubFetcher) FetchAllCategories(ctx context.Context) ([]woocommerce.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.categories, nil
}

func (s *stubFetcher) FetchAllProducts(ctx context.Context, filter *woocommerce.ProductFilter) ([]woocommerce.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func newTestOrchestrator(t *testing.T, workers int) (*Orchestrator, *gorm.DB) {
	t.Helper()

	store, db := newTestStore(t)
	log := logger.New("error")
	assets := storage.NewLocalStore(t.TempDir(), "/images/products")
	importer := NewImporter(store, log)
	images := NewImagePipeline(assets, 0, log)
	publisher := events.NewPublisher("", log) // no brokers: publishing is a no-op

	return NewOrchestrator(store, importer, images, publisher, workers, log), db
}

func testCatalog(imageURL string) ([]woocommerce.Category, []woocommerce.Product) {
	categories := []woocommerce.Category{
		{ID: 2, Parent: 1, Name: "English Willow", Slug: "english-willow"},
		{ID: 1, Parent: 0, Name: "Bats", Slug: "bats"},
	}

	products := []woocommerce.Product{
		{
			ID: 10, Name: "SG Test Bat", Slug: "sg-test-bat", SKU: "SG-TB-01", RegularPrice: "199.99",
			Categories: []woocommerce.CategoryRef{{ID: 2, Name: "English Willow"}, {ID: 1, Name: "Bats"}},
			Images:     []woocommerce.Image{{Src: imageURL + "/front.jpg", Alt: "front view"}},
			Attributes: []woocommerce.Attribute{{Name: "Size", Options: []string{"SH", "LH"}}},
		},
		{
			ID: 11, Name: "Kookaburra Turf Ball", Slug: "kb-turf-ball", SKU: "KB-TB", RegularPrice: "12.00",
			Categories: []woocommerce.CategoryRef{{ID: 1, Name: "Bats"}},
		},
	}

	return categories, products
}

func TestRunMigratesFullCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegdata"))
	}))
	defer server.Close()

	orchestrator, db := newTestOrchestrator(t, 2)
	categories, products := testCatalog(server.URL)

	result := orchestrator.Run(context.Background(), categories, products)

	require.True(t, result.Success)
	assert.Equal(t, 2, result.Stats.CategoriesImported)
	assert.Equal(t, 2, result.Stats.ProductsImported)
	assert.Equal(t, 1, result.Stats.ImagesProcessed)
	assert.Equal(t, 1, result.Stats.AttributesCreated)
	assert.Equal(t, 0, result.Stats.Errors)

	assert.Equal(t, StepComplete, orchestrator.Progress().Step)

	// Hierarchy landed parent-first.
	var child models.Category
	require.NoError(t, db.First(&child, "slug = ?", "english-willow").Error)
	require.NotNil(t, child.ParentID)

	// Primary assignment mirrors the first source category.
	var bat models.Product
	require.NoError(t, db.First(&bat, "slug = ?", "sg-test-bat").Error)
	var primary models.ProductCategory
	require.NoError(t, db.First(&primary, "product_id = ? AND is_primary = ?", bat.ID, true).Error)
	assert.Equal(t, child.ID, primary.CategoryID)

	// The downloaded image carries a local path.
	var image models.ProductImage
	require.NoError(t, db.First(&image).Error)
	assert.True(t, image.IsLocal())
	assert.True(t, image.IsPrimary)
}

func TestRunSecondImportAllSkips(t *testing.T) {
	orchestrator, db := newTestOrchestrator(t, 1)
	categories, products := testCatalog("http://unused.invalid")

	// Strip the images so no network is touched.
	for i := range products {
		products[i].Images = nil
	}

	first := orchestrator.Run(context.Background(), categories, products)
	require.True(t, first.Success)
	assert.Equal(t, 2, first.Stats.ProductsImported)

	second := orchestrator.Run(context.Background(), categories, products)
	require.True(t, second.Success)
	assert.Equal(t, 0, second.Stats.ProductsImported)
	assert.Equal(t, 2, second.Stats.ProductsSkipped)
	assert.Equal(t, 0, second.Stats.CategoriesImported)

	var productCount, categoryCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&categoryCount).Error)
	assert.Equal(t, int64(2), productCount, "re-running must not duplicate products")
	assert.Equal(t, int64(2), categoryCount)
}

func TestRunStoresFallbackURLOn404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	orchestrator, db := newTestOrchestrator(t, 1)
	categories, products := testCatalog(server.URL)

	result := orchestrator.Run(context.Background(), categories, products)
	require.True(t, result.Success, "image failures degrade, they do not fail the run")

	var image models.ProductImage
	require.NoError(t, db.First(&image).Error)
	assert.Equal(t, server.URL+"/front.jpg", image.URL)
	assert.False(t, image.IsLocal())
	assert.NotEmpty(t, image.URL)
}

func TestRunPerRecordErrorsAreNonFatal(t *testing.T) {
	orchestrator, _ := newTestOrchestrator(t, 1)

	products := []woocommerce.Product{
		{ID: 1, Name: "Good Ball", Slug: "good-ball", SKU: "GB-1", RegularPrice: "5.00"},
		{ID: 2, Name: "Good Ball", Slug: "good-ball-dup", SKU: "GB-1X", RegularPrice: "5.00"},
	}

	result := orchestrator.Run(context.Background(), nil, products)

	require.True(t, result.Success)
	assert.Equal(t, 2, result.Stats.ProductsImported+result.Stats.ProductsSkipped,
		"created plus skipped must equal the input count")
}

func TestExecuteFetchFailure(t *testing.T) {
	orchestrator, _ := newTestOrchestrator(t, 1)

	result := orchestrator.Execute(context.Background(), &stubFetcher{err: errors.New("connection refused")})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "failed to fetch source categories")
	assert.Equal(t, StepError, orchestrator.Progress().Step)
}

func TestExecuteRunsFetchedCatalog(t *testing.T) {
	orchestrator, _ := newTestOrchestrator(t, 1)
	categories, products := testCatalog("http://unused.invalid")
	for i := range products {
		products[i].Images = nil
	}

	result := orchestrator.Execute(context.Background(), &stubFetcher{categories: categories, products: products})

	require.True(t, result.Success)
	assert.Equal(t, 2, result.Stats.ProductsImported)
}

func TestAcquireHoldsSingleRunSlot(t *testing.T) {
	orchestrator, _ := newTestOrchestrator(t, 1)

	require.NoError(t, orchestrator.Acquire())
	assert.ErrorIs(t, orchestrator.Acquire(), ErrAlreadyRunning)
	assert.True(t, orchestrator.IsRunning())

	// ExecuteAcquired releases the slot when the run finishes.
	result := orchestrator.ExecuteAcquired(context.Background(), &stubFetcher{})
	require.True(t, result.Success)
	assert.False(t, orchestrator.IsRunning())
	require.NoError(t, orchestrator.Acquire())
	orchestrator.finish()
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	orchestrator, _ := newTestOrchestrator(t, 1)

	require.True(t, orchestrator.tryStart())
	defer orchestrator.finish()

	assert.True(t, orchestrator.IsRunning())

	result := orchestrator.Run(context.Background(), nil, nil)
	assert.False(t, result.Success)
	assert.Equal(t, "migration already in progress", result.Message)
}

func TestRunHonorsCancellation(t *testing.T) {
	orchestrator, db := newTestOrchestrator(t, 1)
	categories, products := testCatalog("http://unused.invalid")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := orchestrator.Run(ctx, categories, products)

	assert.False(t, result.Success)
	assert.Equal(t, "migration cancelled", result.Message)
	assert.Equal(t, StepError, orchestrator.Progress().Step)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "cancellation before the first record imports nothing")
}

func TestProgressSnapshotIsCopy(t *testing.T) {
	orchestrator, _ := newTestOrchestrator(t, 1)

	orchestrator.recordError("first")
	snapshot := orchestrator.Progress()
	snapshot.Errors[0] = "mutated"

	assert.Equal(t, "first", orchestrator.Progress().Errors[0])
}
