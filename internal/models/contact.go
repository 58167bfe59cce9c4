package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContactEmail   = "EMAIL"
	ContactPhone   = "PHONE"
	ContactAddress = "ADDRESS"
	ContactWebsite = "WEBSITE"
	ContactSocial  = "SOCIAL"
)

func IsValidContactType(t string) bool {
	switch t {
	case ContactEmail, ContactPhone, ContactAddress, ContactWebsite, ContactSocial:
		return true
	}
	return false
}

// Contact is a site contact record. At most one contact per type carries
// IsMain = true; writes clear the flag on siblings of the same type.
type Contact struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	Type   string `gorm:"size:20;not null;index" json:"type"`
	Value  string `gorm:"size:255;not null" json:"value"`
	IsMain bool   `gorm:"default:false" json:"isMain"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
