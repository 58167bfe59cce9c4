package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/drivebook/car-rental-api/internal/domain/booking"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// Missing rows become business errors here; any other failure is passed
// through so it surfaces as a 500 instead of a 404.
func (r *BookingGormRepository) GetCatalogItem(ctx context.Context, id string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("item_not_found")
		}
		return nil, err
	}
	return &item, nil
}

func (r *BookingGormRepository) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

// HasOverlap applies the inclusive-boundary rule over active bookings:
// start_date <= requested end AND end_date >= requested start.
func (r *BookingGormRepository) HasOverlap(
	ctx context.Context,
	catalogItemID string,
	start, end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"catalog_item_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
			catalogItemID, domain.ActiveStatuses, end, start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// CreateBookingAtomic re-checks the overlap with conflicting rows locked, then
// inserts. The bookings_no_overlap exclusion constraint catches whatever the
// lock cannot, and its violation maps to the same conflict error.
func (r *BookingGormRepository) CreateBookingAtomic(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"catalog_item_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
				b.CatalogItemID, domain.ActiveStatuses, b.EndDate, b.StartDate,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("booking_conflict")
		}

		if err := tx.Create(b).Error; err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrBusiness("booking_conflict")
			}
			return err
		}

		return nil
	})
}

func (r *BookingGormRepository) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
