package services

import (
	"TeamChat/models"
	"TeamChat/repositories/mocks"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func recentMessages(ids ...string) []models.Message {
	msgs := make([]models.Message, len(ids))
	for i, id := range ids {
		msgs[i] = models.Message{ID: id, ChatID: "c1", Timestamp: int64(100 - i)}
	}
	return msgs
}

func TestHasUnreadNoMessages(t *testing.T) {
	repo := new(mocks.MessageRepository)
	repo.On("ListRecent", mock.Anything, "c1", UnreadWindow).Return([]models.Message{}, nil)

	unread, err := NewUnreadAggregator(repo).HasUnread(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.False(t, unread)
	repo.AssertNotCalled(t, "FindReadMessageIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestHasUnreadAllRead(t *testing.T) {
	repo := new(mocks.MessageRepository)
	ids := []string{"m5", "m4", "m3", "m2", "m1"}
	repo.On("ListRecent", mock.Anything, "c1", UnreadWindow).Return(recentMessages(ids...), nil)
	repo.On("FindReadMessageIDs", mock.Anything, "u1", ids).
		Return(map[string]bool{"m1": true, "m2": true, "m3": true, "m4": true, "m5": true}, nil)

	unread, err := NewUnreadAggregator(repo).HasUnread(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.False(t, unread)
	repo.AssertExpectations(t)
}

func TestHasUnreadAnyMissingReceipt(t *testing.T) {
	repo := new(mocks.MessageRepository)
	ids := []string{"m5", "m4", "m3", "m2", "m1"}
	repo.On("ListRecent", mock.Anything, "c1", UnreadWindow).Return(recentMessages(ids...), nil)
	// only the oldest message in the window is unread
	repo.On("FindReadMessageIDs", mock.Anything, "u1", ids).
		Return(map[string]bool{"m2": true, "m3": true, "m4": true, "m5": true}, nil)

	unread, err := NewUnreadAggregator(repo).HasUnread(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.True(t, unread)
}

func TestAnnotatePreservesOrderAndWrapsErrors(t *testing.T) {
	repo := new(mocks.MessageRepository)
	repo.On("ListRecent", mock.Anything, "c1", UnreadWindow).Return(recentMessages("m1"), nil)
	repo.On("FindReadMessageIDs", mock.Anything, "u1", []string{"m1"}).Return(map[string]bool{}, nil)
	repo.On("ListRecent", mock.Anything, "c2", UnreadWindow).Return([]models.Message{}, nil)

	items, err := NewUnreadAggregator(repo).Annotate(context.Background(), []models.Chat{{ID: "c1"}, {ID: "c2"}}, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c1", items[0].ID)
	assert.True(t, items[0].HasUnread)
	assert.Equal(t, "c2", items[1].ID)
	assert.False(t, items[1].HasUnread)

	failing := new(mocks.MessageRepository)
	boom := errors.New("boom")
	failing.On("ListRecent", mock.Anything, "c1", UnreadWindow).Return([]models.Message(nil), boom)
	_, err = NewUnreadAggregator(failing).Annotate(context.Background(), []models.Chat{{ID: "c1"}}, "u1")
	assert.ErrorIs(t, err, boom)
}
