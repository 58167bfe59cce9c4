package booking

import (
	"context"
	"time"

	"github.com/drivebook/car-rental-api/internal/audit"
	domain "github.com/drivebook/car-rental-api/internal/domain/booking"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/models"
)

type CreateBookingInput struct {
	UserID        string
	CatalogItemID string
	StartDate     time.Time
	EndDate       time.Time
	Notes         string
}

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(repo domain.Repository, audit *audit.Dispatcher) *CreateBooking {
	return &CreateBooking{repo: repo, audit: audit}
}

func (uc *CreateBooking) Execute(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {

	if !in.EndDate.After(in.StartDate) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	item, err := uc.repo.GetCatalogItem(ctx, in.CatalogItemID)
	if err != nil {
		return nil, err
	}

	if !item.IsAvailable {
		return nil, httperr.ErrBusiness("item_unavailable")
	}

	b := &models.Booking{
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		TotalPrice:    domain.TotalPrice(in.StartDate, in.EndDate, item.Price),
		Notes:         in.Notes,
		Status:        domain.InitialStatus(),
		HasReview:     false,
		UserID:        in.UserID,
		CatalogItemID: in.CatalogItemID,
	}

	// Overlap check and insert run in one transaction, with the exclusion
	// constraint as a backstop against concurrent inserts.
	if err := uc.repo.CreateBookingAtomic(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
