package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/drivebook/car-rental-api/internal/domain/booking"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/models"
	ucreview "github.com/drivebook/car-rental-api/internal/usecase/review"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) ListCompletedBookings(
	ctx context.Context,
	userID, catalogItemID string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"user_id = ? AND catalog_item_id = ? AND status = ?",
			userID, catalogItemID, domain.StatusCompleted,
		).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// CreateForBooking flips the booking's review flag before inserting. The
// conditional update doubles as the row lock: a second transaction for the
// same booking blocks on it, then sees zero rows and bails, so each
// completed booking carries at most one review even under concurrent writes.
func (r *ReviewGormRepository) CreateForBooking(
	ctx context.Context,
	review *models.Review,
	bookingID string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND has_review = ?", bookingID, false).
			Update("has_review", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("already_reviewed")
		}

		return tx.Create(review).Error
	})
}

// Compile-time check
var _ ucreview.Repository = (*ReviewGormRepository)(nil)
