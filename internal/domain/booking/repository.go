package booking

import (
	"context"
	"time"

	"github.com/drivebook/car-rental-api/internal/models"
)

// Repository is the persistence surface the booking use cases depend on.
// The gorm implementation lives in internal/infra/repository.
type Repository interface {
	// Lookups return ErrBusiness("item_not_found") / ErrBusiness("booking_not_found")
	// for missing rows; other errors pass through untouched.
	GetCatalogItem(ctx context.Context, id string) (*models.CatalogItem, error)

	GetBooking(ctx context.Context, id string) (*models.Booking, error)

	// HasOverlap counts PENDING/CONFIRMED bookings of the item whose range
	// overlaps [start, end] under the inclusive-boundary rule.
	HasOverlap(ctx context.Context, catalogItemID string, start, end time.Time) (bool, error)

	// CreateBookingAtomic runs the overlap re-check and the insert in a single
	// transaction, locking conflicting rows. Returns ErrBusiness("booking_conflict")
	// when the range is taken.
	CreateBookingAtomic(ctx context.Context, b *models.Booking) error

	UpdateBooking(ctx context.Context, b *models.Booking) error

	DeleteBooking(ctx context.Context, id string) error
}
