package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/drivebook/car-rental-api/internal/domain/booking"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/models"
)

type fakeRepo struct {
	bookings []*models.Booking
	reviews  []*models.Review
}

var _ Repository = (*fakeRepo)(nil)

func (f *fakeRepo) ListCompletedBookings(_ context.Context, userID, catalogItemID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && b.CatalogItemID == catalogItemID && b.Status == domain.StatusCompleted {
			out = append(out, *b)
		}
	}
	return out, nil
}

// CreateForBooking mirrors the gorm implementation: the insert only goes
// through when the booking's review flag is still clear.
func (f *fakeRepo) CreateForBooking(_ context.Context, r *models.Review, bookingID string) error {
	for _, b := range f.bookings {
		if b.ID != bookingID {
			continue
		}
		if b.HasReview {
			return httperr.ErrBusiness("already_reviewed")
		}
		b.HasReview = true
		r.ID = uuid.NewString()
		f.reviews = append(f.reviews, r)
		return nil
	}
	return httperr.ErrBusiness("booking_not_found")
}

func (f *fakeRepo) addBooking(userID, itemID, status string) *models.Booking {
	b := &models.Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		CatalogItemID: itemID,
		Status:        status,
	}
	f.bookings = append(f.bookings, b)
	return b
}

func TestCreateReview_RequiresCompletedBooking(t *testing.T) {
	repo := &fakeRepo{}
	repo.addBooking("user-1", "item-1", domain.StatusConfirmed)
	uc := NewCreateReview(repo, nil)

	_, err := uc.Execute(context.Background(), CreateReviewInput{
		UserID:        "user-1",
		CatalogItemID: "item-1",
		Rating:        5,
	})
	assert.True(t, httperr.IsBusiness(err, "no_completed_booking"))
}

func TestCreateReview_LinksCompletedBooking(t *testing.T) {
	repo := &fakeRepo{}
	b := repo.addBooking("user-1", "item-1", domain.StatusCompleted)
	uc := NewCreateReview(repo, nil)

	r, err := uc.Execute(context.Background(), CreateReviewInput{
		UserID:        "user-1",
		CatalogItemID: "item-1",
		Rating:        4,
		Comment:       "smooth ride",
	})
	require.NoError(t, err)

	require.NotNil(t, r.BookingID)
	assert.Equal(t, b.ID, *r.BookingID)
	assert.True(t, b.HasReview)
}

func TestCreateReview_SecondReviewRejected(t *testing.T) {
	repo := &fakeRepo{}
	repo.addBooking("user-1", "item-1", domain.StatusCompleted)
	uc := NewCreateReview(repo, nil)

	_, err := uc.Execute(context.Background(), CreateReviewInput{
		UserID:        "user-1",
		CatalogItemID: "item-1",
		Rating:        5,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateReviewInput{
		UserID:        "user-1",
		CatalogItemID: "item-1",
		Rating:        3,
	})
	assert.True(t, httperr.IsBusiness(err, "already_reviewed"))
}

func TestCreateReview_TwoCompletedBookingsAllowTwoReviews(t *testing.T) {
	repo := &fakeRepo{}
	repo.addBooking("user-1", "item-1", domain.StatusCompleted)
	repo.addBooking("user-1", "item-1", domain.StatusCompleted)
	uc := NewCreateReview(repo, nil)

	_, err := uc.Execute(context.Background(), CreateReviewInput{UserID: "user-1", CatalogItemID: "item-1", Rating: 5})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateReviewInput{UserID: "user-1", CatalogItemID: "item-1", Rating: 2})
	require.NoError(t, err)

	// Both bookings now carry a review, so a third attempt fails.
	_, err = uc.Execute(context.Background(), CreateReviewInput{UserID: "user-1", CatalogItemID: "item-1", Rating: 1})
	assert.True(t, httperr.IsBusiness(err, "already_reviewed"))
}

// staleRepo reports bookings as unreviewed even after a review landed, the
// way a second request racing the first reads the flag before it flips.
type staleRepo struct {
	fakeRepo
}

func (s *staleRepo) ListCompletedBookings(ctx context.Context, userID, catalogItemID string) ([]models.Booking, error) {
	out, err := s.fakeRepo.ListCompletedBookings(ctx, userID, catalogItemID)
	for i := range out {
		out[i].HasReview = false
	}
	return out, err
}

func TestCreateReview_RacingDuplicateRejectedAtWrite(t *testing.T) {
	repo := &staleRepo{}
	repo.addBooking("user-1", "item-1", domain.StatusCompleted)
	uc := NewCreateReview(repo, nil)

	_, err := uc.Execute(context.Background(), CreateReviewInput{
		UserID:        "user-1",
		CatalogItemID: "item-1",
		Rating:        5,
	})
	require.NoError(t, err)

	// The eligibility check passes on the stale flag; the conditional
	// write still refuses a second review for the same booking.
	_, err = uc.Execute(context.Background(), CreateReviewInput{
		UserID:        "user-1",
		CatalogItemID: "item-1",
		Rating:        3,
	})
	assert.True(t, httperr.IsBusiness(err, "already_reviewed"))
	assert.Len(t, repo.reviews, 1)
}

func TestCreateReview_InvalidRating(t *testing.T) {
	repo := &fakeRepo{}
	repo.addBooking("user-1", "item-1", domain.StatusCompleted)
	uc := NewCreateReview(repo, nil)

	for _, rating := range []int{0, -1, 6} {
		_, err := uc.Execute(context.Background(), CreateReviewInput{
			UserID:        "user-1",
			CatalogItemID: "item-1",
			Rating:        rating,
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_rating"), "rating %d", rating)
	}
}
