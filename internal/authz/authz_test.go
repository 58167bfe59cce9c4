package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drivebook/car-rental-api/internal/domain/booking"
	"github.com/drivebook/car-rental-api/internal/models"
)

var (
	admin = Principal{ID: "admin-1", Role: models.RoleAdmin}
	owner = Principal{ID: "user-1", Role: models.RoleUser}
	other = Principal{ID: "user-2", Role: models.RoleUser}
)

func TestCanManageCatalog(t *testing.T) {
	assert.True(t, CanManageCatalog(admin))
	assert.False(t, CanManageCatalog(owner))
}

func TestCanReadBooking(t *testing.T) {
	assert.True(t, CanReadBooking(admin, "user-1"))
	assert.True(t, CanReadBooking(owner, "user-1"))
	assert.False(t, CanReadBooking(other, "user-1"))
}

func TestCanSetBookingStatus(t *testing.T) {
	// Admin may set any status on any booking.
	for _, s := range []string{booking.StatusPending, booking.StatusConfirmed, booking.StatusCancelled, booking.StatusCompleted} {
		assert.True(t, CanSetBookingStatus(admin, "user-1", s), s)
	}

	// Owner may only cancel.
	assert.True(t, CanSetBookingStatus(owner, "user-1", booking.StatusCancelled))
	assert.False(t, CanSetBookingStatus(owner, "user-1", booking.StatusConfirmed))
	assert.False(t, CanSetBookingStatus(owner, "user-1", booking.StatusCompleted))
	assert.False(t, CanSetBookingStatus(owner, "user-1", booking.StatusPending))

	// A non-owner cannot touch the booking at all.
	assert.False(t, CanSetBookingStatus(other, "user-1", booking.StatusCancelled))
}

func TestCanDeleteBooking(t *testing.T) {
	assert.True(t, CanDeleteBooking(admin))
	assert.False(t, CanDeleteBooking(owner))
}

func TestCanEditReview(t *testing.T) {
	assert.True(t, CanEditReview(admin, "user-1"))
	assert.True(t, CanEditReview(owner, "user-1"))
	assert.False(t, CanEditReview(other, "user-1"))
}
