package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryEconomy  = "ECONOMY"
	CategoryComfort  = "COMFORT"
	CategoryBusiness = "BUSINESS"
	CategoryElite    = "ELITE"
)

// IsValidCategory reports whether category is one of the known vehicle classes.
func IsValidCategory(category string) bool {
	switch category {
	case CategoryEconomy, CategoryComfort, CategoryBusiness, CategoryElite:
		return true
	}
	return false
}

// CatalogItem is a rentable vehicle listing. Price is the per-day rate.
type CatalogItem struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Title       string  `gorm:"size:150;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	ImageURL    string  `gorm:"size:500" json:"imageUrl"`
	IsAvailable bool    `gorm:"default:true" json:"isAvailable"`
	Category    string  `gorm:"size:20;default:'ECONOMY'" json:"category"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ci *CatalogItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}
