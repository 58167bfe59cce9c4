package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestBookingOverlapConstraintDDL(t *testing.T) {
	// Index expressions must be immutable. tstzrange over the raw timestamp
	// columns qualifies; casting timestamptz to date depends on the session
	// time zone and Postgres rejects it with 42P17.
	assert.Contains(t, bookingsNoOverlapDDL, "tstzrange(start_date, end_date, '[]')")
	assert.NotContains(t, bookingsNoOverlapDDL, "::date")

	// Only statuses that occupy a range participate.
	assert.Contains(t, bookingsNoOverlapDDL, "status IN ('PENDING', 'CONFIRMED')")
	assert.Contains(t, bookingsNoOverlapDDL, "catalog_item_id WITH =")
}

func TestIsDuplicateObject(t *testing.T) {
	assert.True(t, isDuplicateObject(&pgconn.PgError{Code: "42710"}))
	assert.True(t, isDuplicateObject(fmt.Errorf("exec: %w", &pgconn.PgError{Code: "42710"})))

	assert.False(t, isDuplicateObject(&pgconn.PgError{Code: "42P17"}))
	assert.False(t, isDuplicateObject(errors.New("connection refused")))
	assert.False(t, isDuplicateObject(nil))
}
