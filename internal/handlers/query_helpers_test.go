package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	got, err := parseDateTime("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDateTime("2024-06-01T15:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC), got)

	got, err = parseDateTime("2024-06-01T15:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC), got)

	_, err = parseDateTime("01/06/2024")
	assert.Error(t, err)

	_, err = parseDateTime("")
	assert.Error(t, err)
}

func TestSortClause(t *testing.T) {
	allowed := map[string]string{
		"price":     "price",
		"createdAt": "created_at",
	}

	assert.Equal(t, "price ASC", sortClause("price", "asc", allowed, "created_at"))
	assert.Equal(t, "price DESC", sortClause("price", "desc", allowed, "created_at"))
	assert.Equal(t, "created_at DESC", sortClause("createdAt", "", allowed, "created_at"))

	// Unknown keys fall back to the default column, never raw input.
	assert.Equal(t, "created_at DESC", sortClause("price; DROP TABLE", "", allowed, "created_at"))
	assert.Equal(t, "created_at ASC", sortClause("", "ASC", allowed, "created_at"))
}
