package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/models"
)

func TestCreateForBooking_FlagAlreadySet(t *testing.T) {
	gdb, mock := newMockDB(t)

	// The conditional flip matches zero rows when the booking already
	// carries a review; the transaction rolls back without inserting.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewReviewGormRepository(gdb)

	err := repo.CreateForBooking(context.Background(), &models.Review{
		ID:            "review-1",
		Rating:        4,
		UserID:        "user-1",
		CatalogItemID: "item-1",
	}, "booking-1")

	assert.True(t, httperr.IsBusiness(err, "already_reviewed"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
