package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	StartDate  time.Time `gorm:"not null;index" json:"startDate"`
	EndDate    time.Time `gorm:"not null" json:"endDate"`
	TotalPrice float64   `json:"totalPrice"`
	Notes      string    `gorm:"size:500" json:"notes"`
	Status     string    `gorm:"size:20;default:'PENDING';index" json:"status"`
	HasReview  bool      `gorm:"default:false" json:"hasReview"`

	UserID string `gorm:"size:36;not null;index" json:"userId"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	CatalogItemID string      `gorm:"size:36;not null;index" json:"catalogItemId"`
	CatalogItem   CatalogItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"catalogItem"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
