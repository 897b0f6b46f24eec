package migration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"crickstore/internal/logger"
	"crickstore/internal/models"
	"crickstore/internal/services/woocommerce"
)

// CatalogStore is the slice of the local catalog the importer writes
// through. Each call is one unit of work; there is no run-wide transaction.
type CatalogStore interface {
	FindCategoryBySlugOrName(slug, name string) (*models.Category, error)
	CreateCategory(category *models.Category) error
	FindProductBySlugOrSKU(slug, sku string) (*models.Product, error)
	CreateProduct(product *models.Product) error
	CreateCategoryAssignment(assignment *models.ProductCategory) error
	CreateImageRecord(image *models.ProductImage) error
	FindOrCreateAttribute(name, slug string) (*models.Attribute, bool, error)
	CreateAttributeValue(value *models.ProductAttributeValue) error
	SlugExists(slug string) (bool, error)
	SKUExists(sku string) (bool, error)
	Counts() (categories, products, images int64, err error)
}

// ProductImportOutcome reports what ImportProduct did for one source record.
type ProductImportOutcome struct {
	Product           *models.Product
	Imported          bool
	AttributesCreated int
}

type Importer struct {
	store  CatalogStore
	logger *logger.Logger
}

func NewImporter(store CatalogStore, logger *logger.Logger) *Importer {
	return &Importer{
		store:  store,
		logger: logger,
	}
}

// ImportCategory creates the local category for a source category, or
// returns the existing one matched by slug-or-name. parents maps source
// category ids to already-persisted local ids; hierarchy ordering guarantees
// the parent entry is there before any child arrives.
func (imp *Importer) ImportCategory(remote woocommerce.Category, parents map[int64]string) (*models.Category, bool, error) {
	slug := remote.Slug
	if slug == "" {
		slug = Slugify(remote.Name)
	}

	existing, err := imp.store.FindCategoryBySlugOrName(slug, remote.Name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		imp.logger.Debug("Category %q already exists, reusing %s", remote.Name, existing.ID)
		return existing, false, nil
	}

	category := &models.Category{
		Name:     remote.Name,
		Slug:     slug,
		IsActive: true,
	}
	if remote.Description != "" {
		category.Description = &remote.Description
	}
	if localParent, ok := parents[remote.Parent]; ok && remote.Parent != 0 {
		category.ParentID = &localParent
	}

	if err := imp.store.CreateCategory(category); err != nil {
		return nil, false, err
	}

	imp.logger.Info("Imported category %q (%s)", remote.Name, category.ID)
	return category, true, nil
}

// ImportProduct transforms and persists one source product. A product whose
// source slug or SKU already exists locally is skipped outright, never
// updated. Distinct products whose generated keys collide get suffixed keys
// instead.
func (imp *Importer) ImportProduct(remote woocommerce.Product, categoryIDs map[int64]string) (*ProductImportOutcome, error) {
	existing, err := imp.store.FindProductBySlugOrSKU(remote.Slug, remote.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		imp.logger.Debug("Product %q already exists, skipping", remote.Name)
		return &ProductImportOutcome{Product: existing, Imported: false}, nil
	}

	slug, err := imp.UniqueSlug(slugBase(remote))
	if err != nil {
		return nil, err
	}
	sku, err := imp.UniqueSKU(skuBase(remote))
	if err != nil {
		return nil, err
	}

	product := transformProduct(remote)
	product.Slug = slug
	product.SKU = sku

	if err := imp.store.CreateProduct(product); err != nil {
		return nil, err
	}

	// First category on the source record is the primary one.
	for i, ref := range remote.Categories {
		localID, ok := categoryIDs[ref.ID]
		if !ok {
			imp.logger.Warn("Product %q references unknown category %d (%s)", remote.Name, ref.ID, ref.Name)
			continue
		}
		assignment := &models.ProductCategory{
			ProductID:  product.ID,
			CategoryID: localID,
			IsPrimary:  i == 0,
			SortOrder:  i,
		}
		if err := imp.store.CreateCategoryAssignment(assignment); err != nil {
			return nil, err
		}
	}

	created, err := imp.importAttributes(product.ID, remote.Attributes)
	if err != nil {
		return nil, err
	}

	imp.logger.Info("Imported product %q as %s (slug %s, sku %s)", remote.Name, product.ID, slug, sku)
	return &ProductImportOutcome{Product: product, Imported: true, AttributesCreated: created}, nil
}

// importAttributes stores one value row per source attribute, keeping only
// the first option. Definitions are deduplicated store-wide by name.
func (imp *Importer) importAttributes(productID string, attributes []woocommerce.Attribute) (int, error) {
	created := 0
	for _, attr := range attributes {
		if attr.Name == "" || len(attr.Options) == 0 {
			continue
		}

		definition, isNew, err := imp.store.FindOrCreateAttribute(attr.Name, Slugify(attr.Name))
		if err != nil {
			return created, err
		}
		if isNew {
			created++
		}

		value := &models.ProductAttributeValue{
			ProductID:   productID,
			AttributeID: definition.ID,
			Value:       attr.Options[0],
		}
		if err := imp.store.CreateAttributeValue(value); err != nil {
			return created, err
		}
	}
	return created, nil
}

// UniqueSlug suffixes base with -1, -2, ... until no product carries it.
func (imp *Importer) UniqueSlug(base string) (string, error) {
	return firstAvailable(base, imp.store.SlugExists)
}

// UniqueSKU works like UniqueSlug with its own independent counter.
func (imp *Importer) UniqueSKU(base string) (string, error) {
	return firstAvailable(base, imp.store.SKUExists)
}

// transformProduct maps source fields onto the local schema with explicit
// defaults: price falls back regular -> listed -> 0, OriginalPrice is the
// "was" price and only set while a sale price exists, stock defaults to 0.
func transformProduct(remote woocommerce.Product) *models.Product {
	product := &models.Product{
		Name:     remote.Name,
		IsActive: true,
	}

	if remote.Description != "" {
		product.Description = &remote.Description
	}
	if remote.ShortDescription != "" {
		product.ShortDescription = &remote.ShortDescription
	}

	regular := parsePrice(remote.RegularPrice)
	listed := parsePrice(remote.Price)
	sale := parsePrice(remote.SalePrice)

	switch {
	case regular != nil:
		product.Price = *regular
	case listed != nil:
		product.Price = *listed
	}
	if sale != nil && regular != nil {
		product.OriginalPrice = regular
	}

	if remote.StockQuantity != nil {
		product.StockQuantity = *remote.StockQuantity
	}

	if w := parsePrice(remote.Weight); w != nil {
		product.Weight = w
	}
	if remote.Dimensions.Length != "" || remote.Dimensions.Width != "" || remote.Dimensions.Height != "" {
		product.Dimensions = &models.Dimensions{
			Length: remote.Dimensions.Length,
			Width:  remote.Dimensions.Width,
			Height: remote.Dimensions.Height,
		}
	}

	return product
}

func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func slugBase(remote woocommerce.Product) string {
	if remote.Slug != "" {
		return remote.Slug
	}
	return Slugify(remote.Name)
}

func skuBase(remote woocommerce.Product) string {
	if remote.SKU != "" {
		return remote.SKU
	}
	return fmt.Sprintf("CS-%d", remote.ID)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases and collapses anything non-alphanumeric into single
// dashes.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
