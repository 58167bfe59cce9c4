package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rate is an informational pricing record attached to a catalog item. It is
// not consulted when a booking's total price is computed; that always derives
// from CatalogItem.Price.
type Rate struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"not null" json:"price"`
	ValidFrom   *time.Time `json:"validFrom"`
	ValidTo     *time.Time `json:"validTo"`
	Conditions  string     `gorm:"size:500" json:"conditions"`

	CatalogItemID string      `gorm:"size:36;not null;index" json:"catalogItemId"`
	CatalogItem   CatalogItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"catalogItem"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Rate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
