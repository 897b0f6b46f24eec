package repository

import (
	"fmt"

	"crickstore/internal/models"

	"gorm.io/gorm"
)

// Catalog is the local catalog store. Every method is a single unit of
// work; the migration pipeline never wraps records in a shared transaction.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// FindCategoryBySlugOrName returns nil without error when no match exists.
func (r *Catalog) FindCategoryBySlugOrName(slug, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ? OR name = ?", slug, name).First(&category).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	return &category, nil
}

func (r *Catalog) CreateCategory(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// FindProductBySlugOrSKU returns nil without error when no match exists.
func (r *Catalog) FindProductBySlugOrSKU(slug, sku string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("slug = ? OR sku = ?", slug, sku).First(&product).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	return &product, nil
}

func (r *Catalog) CreateProduct(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *Catalog) CreateCategoryAssignment(assignment *models.ProductCategory) error {
	if err := r.db.Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create category assignment: %w", err)
	}
	return nil
}

func (r *Catalog) CreateImageRecord(image *models.ProductImage) error {
	if err := r.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to create image record: %w", err)
	}
	return nil
}

// FindOrCreateAttribute deduplicates attribute definitions by name across
// the whole store. The bool reports whether a new definition was created.
func (r *Catalog) FindOrCreateAttribute(name, slug string) (*models.Attribute, bool, error) {
	var attribute models.Attribute
	err := r.db.Where("name = ?", name).First(&attribute).Error
	if err == nil {
		return &attribute, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, fmt.Errorf("failed to look up attribute: %w", err)
	}

	attribute = models.Attribute{Name: name, Slug: slug}
	if err := r.db.Create(&attribute).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create attribute: %w", err)
	}
	return &attribute, true, nil
}

func (r *Catalog) CreateAttributeValue(value *models.ProductAttributeValue) error {
	if err := r.db.Create(value).Error; err != nil {
		return fmt.Errorf("failed to create attribute value: %w", err)
	}
	return nil
}

func (r *Catalog) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

func (r *Catalog) SKUExists(sku string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("sku = ?", sku).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check sku: %w", err)
	}
	return count > 0, nil
}

// Counts feeds the post-run validation step.
func (r *Catalog) Counts() (categories, products, images int64, err error) {
	if err = r.db.Model(&models.Category{}).Count(&categories).Error; err != nil {
		return
	}
	if err = r.db.Model(&models.Product{}).Count(&products).Error; err != nil {
		return
	}
	err = r.db.Model(&models.ProductImage{}).Count(&images).Error
	return
}
