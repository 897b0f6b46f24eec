package migration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"crickstore/internal/events"
	"crickstore/internal/logger"
	"crickstore/internal/models"
	"crickstore/internal/services/woocommerce"
)

// SourceFetcher is the slice of the source client the orchestrator needs.
type SourceFetcher interface {
	FetchAllCategories(ctx context.Context) ([]woocommerce.Category, error)
	FetchAllProducts(ctx context.Context, filter *woocommerce.ProductFilter) ([]woocommerce.Product, error)
}

// Orchestrator drives one migration run at a time. The progress record is
// the single shared mutable resource of a run; every read or write goes
// through the mutex and readers get copies.
type Orchestrator struct {
	importer  *Importer
	images    *ImagePipeline
	store     CatalogStore
	publisher *events.Publisher
	logger    *logger.Logger
	workers   int

	mu       sync.Mutex
	running  bool
	progress Progress
	stats    Stats
}

func NewOrchestrator(store CatalogStore, importer *Importer, images *ImagePipeline, publisher *events.Publisher, workers int, logger *logger.Logger) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		importer:  importer,
		images:    images,
		store:     store,
		publisher: publisher,
		logger:    logger,
		workers:   workers,
		progress:  Progress{Step: StepIdle},
	}
}

// ErrAlreadyRunning reports that the single run slot is taken.
var ErrAlreadyRunning = errors.New("migration already in progress")

// Acquire reserves the single run slot so a caller can answer its client
// before launching the run. The slot is released when the ExecuteAcquired
// call that follows returns; acquiring without executing leaks the slot.
func (o *Orchestrator) Acquire() error {
	if !o.tryStart() {
		return ErrAlreadyRunning
	}
	return nil
}

// Execute fetches the source catalog and runs the migration. A fetch-level
// failure is the one thing that fails the whole run.
func (o *Orchestrator) Execute(ctx context.Context, source SourceFetcher) Result {
	if err := o.Acquire(); err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	return o.ExecuteAcquired(ctx, source)
}

// ExecuteAcquired is Execute for a caller that already holds the run slot
// via Acquire.
func (o *Orchestrator) ExecuteAcquired(ctx context.Context, source SourceFetcher) Result {
	defer o.finish()

	o.setStep(StepStarting, 0, 0, "Fetching source catalog")

	categories, err := source.FetchAllCategories(ctx)
	if err != nil {
		return o.fail(fmt.Sprintf("failed to fetch source categories: %v", err))
	}

	products, err := source.FetchAllProducts(ctx, nil)
	if err != nil {
		return o.fail(fmt.Sprintf("failed to fetch source products: %v", err))
	}

	return o.run(ctx, categories, products)
}

// Run migrates an already-fetched source catalog.
func (o *Orchestrator) Run(ctx context.Context, categories []woocommerce.Category, products []woocommerce.Product) Result {
	if !o.tryStart() {
		return Result{Success: false, Message: ErrAlreadyRunning.Error()}
	}
	defer o.finish()

	return o.run(ctx, categories, products)
}

func (o *Orchestrator) run(ctx context.Context, categories []woocommerce.Category, products []woocommerce.Product) Result {
	started := time.Now()
	o.setStep(StepStarting, 0, 0, fmt.Sprintf("Migrating %d categories and %d products", len(categories), len(products)))
	o.publisher.Publish(ctx, "migration.started", map[string]interface{}{
		"categories": len(categories),
		"products":   len(products),
	})

	localCategories, cancelled := o.runCategories(ctx, categories)
	if cancelled {
		return o.fail("migration cancelled")
	}

	if cancelled := o.runProducts(ctx, products, localCategories); cancelled {
		return o.fail("migration cancelled")
	}

	o.runValidation()

	o.mu.Lock()
	o.progress.Step = StepComplete
	o.progress.Message = fmt.Sprintf("Migration completed in %s", time.Since(started).Round(time.Second))
	result := Result{
		Success: true,
		Message: o.progress.Message,
		Stats:   o.stats,
		Errors:  append([]string(nil), o.progress.Errors...),
	}
	o.mu.Unlock()

	o.publisher.Publish(ctx, "migration.completed", map[string]interface{}{
		"categories_imported": result.Stats.CategoriesImported,
		"products_imported":   result.Stats.ProductsImported,
		"images_processed":    result.Stats.ImagesProcessed,
		"errors":              result.Stats.Errors,
	})

	o.logger.Info("Migration complete: %+v", result.Stats)
	return result
}

// runCategories imports categories in hierarchy order and returns the
// source-id to local-id map the product phase assigns against.
func (o *Orchestrator) runCategories(ctx context.Context, categories []woocommerce.Category) (map[int64]string, bool) {
	ordered := OrderCategories(categories)
	o.setStep(StepCategories, 0, len(ordered), "Importing categories")

	locals := make(map[int64]string, len(ordered))
	for _, remote := range ordered {
		if ctx.Err() != nil {
			return locals, true
		}

		category, created, err := o.importer.ImportCategory(remote, locals)
		if err != nil {
			o.recordError(fmt.Sprintf("category %q: %v", remote.Name, err))
		} else {
			locals[remote.ID] = category.ID
			if created {
				o.mu.Lock()
				o.stats.CategoriesImported++
				o.mu.Unlock()
				o.publisher.Publish(ctx, "category.imported", map[string]interface{}{
					"source_id": remote.ID,
					"local_id":  category.ID,
					"name":      remote.Name,
				})
			}
		}
		o.advance(fmt.Sprintf("Imported category %s", remote.Name))
	}

	return locals, false
}

type imageJob struct {
	product *models.Product
	remote  woocommerce.Product
}

// runProducts imports product rows sequentially (later uniqueness probes
// depend on earlier writes) and hands image work to a bounded pool across
// products. Within one product, images stay ordered so the primary image
// lands first.
func (o *Orchestrator) runProducts(ctx context.Context, products []woocommerce.Product, categoryIDs map[int64]string) bool {
	o.setStep(StepProducts, 0, len(products), "Importing products")

	jobs := make(chan imageJob)
	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				o.processImages(ctx, job)
			}
		}()
	}

	cancelled := false
	for _, remote := range products {
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		outcome, err := o.importer.ImportProduct(remote, categoryIDs)
		if err != nil {
			o.recordError(fmt.Sprintf("product %q: %v", remote.Name, err))
			o.advance(fmt.Sprintf("Failed product %s", remote.Name))
			continue
		}

		o.mu.Lock()
		if outcome.Imported {
			o.stats.ProductsImported++
			o.stats.AttributesCreated += outcome.AttributesCreated
		} else {
			o.stats.ProductsSkipped++
		}
		o.mu.Unlock()

		if outcome.Imported {
			o.publisher.Publish(ctx, "product.imported", map[string]interface{}{
				"source_id": remote.ID,
				"local_id":  outcome.Product.ID,
				"name":      remote.Name,
			})
			if len(remote.Images) > 0 {
				jobs <- imageJob{product: outcome.Product, remote: remote}
			}
		}

		o.advance(fmt.Sprintf("Imported product %s", remote.Name))
	}

	close(jobs)
	wg.Wait()
	return cancelled
}

// processImages downloads one product's images and records each of them,
// falling back to the source URL when a download failed.
func (o *Orchestrator) processImages(ctx context.Context, job imageJob) {
	categories := make([]string, len(job.remote.Categories))
	for i, ref := range job.remote.Categories {
		categories[i] = ref.Name
	}

	o.setImageProgress(&ImageProgress{
		CurrentProduct: job.product.Name,
		TotalImages:    len(job.remote.Images),
		Status:         "downloading",
	})

	results := o.images.DownloadAll(ctx, job.product.Name, job.product.Slug, categories, job.remote.Images)

	for i, result := range results {
		remote := job.remote.Images[i]

		image := &models.ProductImage{
			ProductID: job.product.ID,
			URL:       result.OriginalURL,
			IsPrimary: i == 0,
			SortOrder: i,
		}
		if result.Success {
			image.URL = result.LocalPath
			image.SizeBytes = &result.SizeBytes
			image.Format = &result.Format
		}
		if remote.Alt != "" {
			image.AltText = &remote.Alt
		}
		if remote.Name != "" {
			image.Caption = &remote.Name
		}

		if err := o.store.CreateImageRecord(image); err != nil {
			o.recordError(fmt.Sprintf("image %s for product %q: %v", result.OriginalURL, job.product.Name, err))
			continue
		}

		o.mu.Lock()
		o.stats.ImagesProcessed++
		o.mu.Unlock()

		o.setImageProgress(&ImageProgress{
			CurrentProduct: job.product.Name,
			CurrentImage:   result.OriginalURL,
			TotalImages:    len(job.remote.Images),
			Status:         imageStatus(result),
			LocalPath:      result.LocalPath,
		})
	}
}

func imageStatus(result DownloadResult) string {
	if result.Success {
		return "stored"
	}
	return "fallback"
}

// runValidation counts what actually landed in the store. It informs the
// summary only, nothing is rolled back.
func (o *Orchestrator) runValidation() {
	o.setStep(StepValidation, 0, 0, "Validating imported catalog")

	categories, products, images, err := o.store.Counts()
	if err != nil {
		o.recordError(fmt.Sprintf("validation: %v", err))
		return
	}

	o.setStep(StepValidation, 0, 0, fmt.Sprintf("Store holds %d categories, %d products, %d images", categories, products, images))
}

// Progress returns a snapshot safe for concurrent polling.
func (o *Orchestrator) Progress() Progress {
	o.mu.Lock()
	defer o.mu.Unlock()

	snapshot := o.progress
	snapshot.Errors = append([]string(nil), o.progress.Errors...)
	if o.progress.Image != nil {
		image := *o.progress.Image
		snapshot.Image = &image
	}
	return snapshot
}

// IsRunning reports whether a run currently holds the single run slot.
func (o *Orchestrator) IsRunning() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

func (o *Orchestrator) tryStart() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return false
	}
	o.running = true
	o.progress = Progress{Step: StepStarting}
	o.stats = Stats{}
	return true
}

func (o *Orchestrator) finish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running = false
}

func (o *Orchestrator) fail(message string) Result {
	o.logger.Error("Migration failed: %s", message)

	o.mu.Lock()
	o.progress.Step = StepError
	o.progress.Message = message
	result := Result{
		Success: false,
		Message: message,
		Stats:   o.stats,
		Errors:  append([]string(nil), o.progress.Errors...),
	}
	o.mu.Unlock()

	o.publisher.Publish(context.Background(), "migration.failed", map[string]interface{}{
		"message": message,
	})
	return result
}

func (o *Orchestrator) setStep(step Step, current, total int, message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.progress.Step = step
	o.progress.Current = current
	o.progress.Total = total
	o.progress.Message = message
	o.progress.Image = nil
}

func (o *Orchestrator) advance(message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.progress.Current++
	o.progress.Message = message
}

func (o *Orchestrator) setImageProgress(image *ImageProgress) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.progress.Image = image
}

func (o *Orchestrator) recordError(message string) {
	o.logger.Error("Migration record error: %s", message)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.progress.Errors = append(o.progress.Errors, message)
	o.stats.Errors++
}
