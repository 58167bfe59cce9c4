package review

import (
	"context"

	"github.com/drivebook/car-rental-api/internal/audit"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/models"
)

// Repository is the persistence surface the review use case depends on.
type Repository interface {
	// ListCompletedBookings returns the user's COMPLETED bookings of the item,
	// newest first.
	ListCompletedBookings(ctx context.Context, userID, catalogItemID string) ([]models.Booking, error)

	// CreateForBooking inserts the review and flips the linked booking's
	// hasReview flag in one transaction.
	CreateForBooking(ctx context.Context, r *models.Review, bookingID string) error
}

type CreateReviewInput struct {
	UserID        string
	CatalogItemID string
	Rating        int
	Comment       string
}

type CreateReview struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewCreateReview(repo Repository, audit *audit.Dispatcher) *CreateReview {
	return &CreateReview{repo: repo, audit: audit}
}

// Execute enforces one review per completed booking: the requester must have
// a COMPLETED booking of the item that has no review yet. The new review is
// linked to that booking.
func (uc *CreateReview) Execute(ctx context.Context, in CreateReviewInput) (*models.Review, error) {

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrBusiness("invalid_rating")
	}

	completed, err := uc.repo.ListCompletedBookings(ctx, in.UserID, in.CatalogItemID)
	if err != nil {
		return nil, err
	}

	if len(completed) == 0 {
		return nil, httperr.ErrBusiness("no_completed_booking")
	}

	var target *models.Booking
	for i := range completed {
		if !completed[i].HasReview {
			target = &completed[i]
			break
		}
	}
	if target == nil {
		return nil, httperr.ErrBusiness("already_reviewed")
	}

	r := &models.Review{
		Rating:        in.Rating,
		Comment:       in.Comment,
		UserID:        in.UserID,
		CatalogItemID: in.CatalogItemID,
		BookingID:     &target.ID,
	}

	if err := uc.repo.CreateForBooking(ctx, r, target.ID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &r.ID,
	})

	return r, nil
}
