package contact

import (
	"context"

	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/models"
)

// Repository is the persistence surface the contact use case depends on.
type Repository interface {
	GetContact(ctx context.Context, id string) (*models.Contact, error)

	// SaveExclusive persists the contact; when it carries IsMain, every other
	// contact of the same type loses the flag in the same transaction.
	SaveExclusive(ctx context.Context, c *models.Contact) error
}

type Save struct {
	repo Repository
}

func NewSave(repo Repository) *Save {
	return &Save{repo: repo}
}

func (uc *Save) Create(ctx context.Context, contactType, value string, isMain bool) (*models.Contact, error) {
	if !models.IsValidContactType(contactType) {
		return nil, httperr.ErrBusiness("invalid_contact_type")
	}

	c := &models.Contact{
		Type:   contactType,
		Value:  value,
		IsMain: isMain,
	}

	if err := uc.repo.SaveExclusive(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *Save) Update(ctx context.Context, id, value string, isMain *bool) (*models.Contact, error) {
	c, err := uc.repo.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	if value != "" {
		c.Value = value
	}
	if isMain != nil {
		c.IsMain = *isMain
	}

	if err := uc.repo.SaveExclusive(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
