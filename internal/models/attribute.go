package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attribute definitions are shared store-wide and deduplicated by name.
type Attribute struct {
	ID   string `json:"id" gorm:"type:uuid;primary_key"`
	Name string `json:"name" gorm:"unique;not null"`
	Slug string `json:"slug" gorm:"not null"`
}

func (a *Attribute) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

type ProductAttributeValue struct {
	ID          string `json:"id" gorm:"type:uuid;primary_key"`
	ProductID   string `json:"product_id" gorm:"type:uuid;not null;index"`
	AttributeID string `json:"attribute_id" gorm:"type:uuid;not null;index"`
	Value       string `json:"value" gorm:"not null"`
}

func (pav *ProductAttributeValue) BeforeCreate(tx *gorm.DB) error {
	if pav.ID == "" {
		pav.ID = uuid.New().String()
	}
	return nil
}
