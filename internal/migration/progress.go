package migration

// Step is the phase the current run is in.
type Step string

const (
	StepIdle       Step = "idle"
	StepStarting   Step = "starting"
	StepCategories Step = "categories"
	StepProducts   Step = "products"
	StepValidation Step = "validation"
	StepComplete   Step = "complete"
	StepError      Step = "error"
)

// ImageProgress is the image-level detail shown while product images are
// being pulled down.
type ImageProgress struct {
	CurrentProduct string `json:"current_product"`
	CurrentImage   string `json:"current_image"`
	TotalImages    int    `json:"total_images"`
	Status         string `json:"status"`
	LocalPath      string `json:"local_path,omitempty"`
}

// Progress is the single shared progress record for a run. It is owned by
// the orchestrator and handed out by copy, never by reference.
type Progress struct {
	Step    Step           `json:"step"`
	Current int            `json:"current"`
	Total   int            `json:"total"`
	Message string         `json:"message"`
	Errors  []string       `json:"errors"`
	Image   *ImageProgress `json:"image_progress,omitempty"`
}

// Stats summarises what a run actually wrote.
type Stats struct {
	CategoriesImported int `json:"categories_imported"`
	ProductsImported   int `json:"products_imported"`
	ProductsSkipped    int `json:"products_skipped"`
	ImagesProcessed    int `json:"images_processed"`
	AttributesCreated  int `json:"attributes_created"`
	Errors             int `json:"errors"`
}

// Result is returned to the caller when a run finishes. Success stays true
// on a degraded run; callers are expected to also check Stats.Errors.
type Result struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Stats   Stats    `json:"stats"`
	Errors  []string `json:"errors"`
}
