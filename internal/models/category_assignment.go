package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductCategory links a product to a category. Exactly one assignment per
// product carries IsPrimary, matching the first category on the source record.
type ProductCategory struct {
	ID         string `json:"id" gorm:"type:uuid;primary_key"`
	ProductID  string `json:"product_id" gorm:"type:uuid;not null;index"`
	CategoryID string `json:"category_id" gorm:"type:uuid;not null;index"`
	IsPrimary  bool   `json:"is_primary" gorm:"default:false"`
	SortOrder  int    `json:"sort_order" gorm:"default:0"`
}

func (pc *ProductCategory) BeforeCreate(tx *gorm.DB) error {
	if pc.ID == "" {
		pc.ID = uuid.New().String()
	}
	return nil
}
