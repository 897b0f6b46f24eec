package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID               string      `json:"id" gorm:"type:uuid;primary_key"`
	Name             string      `json:"name" gorm:"not null"`
	Slug             string      `json:"slug" gorm:"unique;not null"`
	SKU              string      `json:"sku" gorm:"unique;not null"`
	Description      *string     `json:"description"`
	ShortDescription *string     `json:"short_description"`
	Price            float64     `json:"price" gorm:"type:decimal(10,2)"`
	OriginalPrice    *float64    `json:"original_price" gorm:"type:decimal(10,2)"`
	StockQuantity    int         `json:"stock_quantity" gorm:"default:0"`
	IsActive         bool        `json:"is_active" gorm:"default:true"`
	IsFeatured       bool        `json:"is_featured" gorm:"default:false"`
	Weight           *float64    `json:"weight"`
	Dimensions       *Dimensions `json:"dimensions" gorm:"type:jsonb;serializer:json"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
