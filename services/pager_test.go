package services

import (
	"TeamChat/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	cursor := EncodeCursor(models.Chat{ID: "abc-123", UpdatedAt: 1700000000123})
	assert.Equal(t, "1700000000123:abc-123", cursor)

	key, err := ParseCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000123), key.UpdatedAt)
	assert.Equal(t, "abc-123", key.ID)
}

func TestParseCursorEmptyMeansFirstPage(t *testing.T) {
	key, err := ParseCursor("")
	require.NoError(t, err)
	assert.Nil(t, key)
}

func TestParseCursorRejectsMalformedInput(t *testing.T) {
	for _, cursor := range []string{"nocolon", "abc:id", "123:", ":id"} {
		_, err := ParseCursor(cursor)
		assert.ErrorIs(t, err, ErrInvalidCursor, cursor)
	}
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, normalizeLimit(0))
	assert.Equal(t, DefaultPageSize, normalizeLimit(-4))
	assert.Equal(t, 7, normalizeLimit(7))
	assert.Equal(t, MaxPageSize, normalizeLimit(MaxPageSize+1))
}
