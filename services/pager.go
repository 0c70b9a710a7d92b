package services

import (
	"TeamChat/models"
	"TeamChat/repositories"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// EncodeCursor returns the "<updatedAt>:<id>" cursor pointing after chat.
func EncodeCursor(chat models.Chat) string {
	return strconv.FormatInt(chat.UpdatedAt, 10) + ":" + chat.ID
}

// ParseCursor decodes a cursor produced by EncodeCursor. An empty string
// means the first page and yields a nil key.
func ParseCursor(cursor string) (*repositories.ChatKey, error) {
	if cursor == "" {
		return nil, nil
	}

	ts, id, ok := strings.Cut(cursor, ":")
	if !ok {
		return nil, fmt.Errorf("%w: missing separator", ErrInvalidCursor)
	}
	updatedAt, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad timestamp %q", ErrInvalidCursor, ts)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidCursor)
	}

	return &repositories.ChatKey{UpdatedAt: updatedAt, ID: id}, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
