package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductImage stores either a local storage path or, when the download
// failed, the original remote URL. The fallback is a normal outcome.
type ProductImage struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key"`
	ProductID string    `json:"product_id" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"not null"`
	AltText   *string   `json:"alt_text"`
	Caption   *string   `json:"caption"`
	IsPrimary bool      `json:"is_primary" gorm:"default:false"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	SizeBytes *int64    `json:"size_bytes"`
	Format    *string   `json:"format"`
	CreatedAt time.Time `json:"created_at"`
}

// IsLocal reports whether URL points at local storage rather than the
// source host.
func (pi *ProductImage) IsLocal() bool {
	return !strings.HasPrefix(pi.URL, "http://") && !strings.HasPrefix(pi.URL, "https://")
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return nil
}
