package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string  `json:"id" gorm:"type:uuid;primary_key"`
	Name        string  `json:"name" gorm:"not null"`
	Slug        string  `json:"slug" gorm:"unique;not null"`
	Description *string `json:"description"`
	// ParentID references another Category; import order guarantees the
	// parent row exists before any child row is written.
	ParentID  *string   `json:"parent_id" gorm:"type:uuid"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
