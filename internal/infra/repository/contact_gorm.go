package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/models"
	uccontact "github.com/drivebook/car-rental-api/internal/usecase/contact"
)

type ContactGormRepository struct {
	db *gorm.DB
}

func NewContactGormRepository(db *gorm.DB) *ContactGormRepository {
	return &ContactGormRepository{db: db}
}

func (r *ContactGormRepository) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	var c models.Contact
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("contact_not_found")
		}
		return nil, err
	}
	return &c, nil
}

// SaveExclusive keeps at most one main contact per type: when c carries
// IsMain, siblings of the same type are demoted in the same transaction.
func (r *ContactGormRepository) SaveExclusive(ctx context.Context, c *models.Contact) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if c.IsMain {
			if err := tx.Model(&models.Contact{}).
				Where("type = ? AND is_main = ? AND id <> ?", c.Type, true, c.ID).
				Update("is_main", false).Error; err != nil {
				return err
			}
		}

		return tx.Save(c).Error
	})
}

// Compile-time check
var _ uccontact.Repository = (*ContactGormRepository)(nil)
