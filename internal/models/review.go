package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:1000" json:"comment"`

	UserID string `gorm:"size:36;not null;index" json:"userId"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	CatalogItemID string      `gorm:"size:36;not null;index" json:"catalogItemId"`
	CatalogItem   CatalogItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"catalogItem"`

	BookingID *string `gorm:"size:36;index" json:"bookingId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
