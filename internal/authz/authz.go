package authz

import (
	"github.com/drivebook/car-rental-api/internal/domain/booking"
	"github.com/drivebook/car-rental-api/internal/models"
)

// Principal is the authenticated caller, as decoded from the JWT.
type Principal struct {
	ID    string
	Email string
	Role  string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// Capability checks are plain functions invoked at the top of handlers.
// They never touch the database; callers pass the loaded resource.

// CanManageCatalog covers catalog items, rates and contacts (admin writes).
func CanManageCatalog(p Principal) bool {
	return p.IsAdmin()
}

// CanReadBooking: owners see their own bookings, admins see all.
func CanReadBooking(p Principal, ownerID string) bool {
	return p.IsAdmin() || p.ID == ownerID
}

// CanSetBookingStatus: admins may set any status; an owner may only cancel.
func CanSetBookingStatus(p Principal, ownerID, newStatus string) bool {
	if p.IsAdmin() {
		return true
	}
	return p.ID == ownerID && newStatus == booking.StatusCancelled
}

func CanDeleteBooking(p Principal) bool {
	return p.IsAdmin()
}

// CanEditReview: owners edit their own reviews, admins edit any.
func CanEditReview(p Principal, ownerID string) bool {
	return p.IsAdmin() || p.ID == ownerID
}
