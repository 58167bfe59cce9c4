package booking

import (
	"context"

	"github.com/drivebook/car-rental-api/internal/audit"
	"github.com/drivebook/car-rental-api/internal/authz"
	domain "github.com/drivebook/car-rental-api/internal/domain/booking"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/models"
)

type UpdateBookingStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBookingStatus(repo domain.Repository, audit *audit.Dispatcher) *UpdateBookingStatus {
	return &UpdateBookingStatus{repo: repo, audit: audit}
}

// Execute overwrites the booking status. Admins may set any status; the owner
// may only cancel. There are no cascading effects: a cancelled booking simply
// stops counting toward the overlap check.
func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	p authz.Principal,
	bookingID string,
	newStatus string,
) (*models.Booking, error) {

	if !domain.IsValidStatus(newStatus) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !authz.CanReadBooking(p, b.UserID) {
		return nil, httperr.ErrBusiness("booking_access_denied")
	}

	if !authz.CanSetBookingStatus(p, b.UserID, newStatus) {
		return nil, httperr.ErrBusiness("status_forbidden")
	}

	b.Status = newStatus
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &p.ID,
		Action:   "booking_status_" + newStatus,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
