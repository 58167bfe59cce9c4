package booking

import (
	"context"
	"time"

	domain "github.com/drivebook/car-rental-api/internal/domain/booking"
	"github.com/drivebook/car-rental-api/internal/httperr"
)

type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

// Execute reports whether the item can be booked for [start, end]. Read-only.
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	catalogItemID string,
	start, end time.Time,
) (bool, error) {

	item, err := uc.repo.GetCatalogItem(ctx, catalogItemID)
	if err != nil {
		return false, err
	}

	if !item.IsAvailable {
		return false, httperr.ErrBusiness("item_unavailable")
	}

	overlap, err := uc.repo.HasOverlap(ctx, catalogItemID, start, end)
	if err != nil {
		return false, err
	}

	return !overlap, nil
}
