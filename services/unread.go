package services

import (
	"TeamChat/models"
	"TeamChat/repositories"
	"context"
	"fmt"
)

// UnreadWindow is how many of the latest messages are checked for receipts.
const UnreadWindow = 5

// ChatListItem is a chat annotated with the caller's unread state.
type ChatListItem struct {
	models.Chat
	HasUnread bool `json:"hasUnread"`
}

// UnreadAggregator approximates unread state from the most recent messages
// only; a gap older than the window is not detected.
type UnreadAggregator struct {
	MessageRepo repositories.MessageRepository
}

func NewUnreadAggregator(messageRepo repositories.MessageRepository) *UnreadAggregator {
	return &UnreadAggregator{MessageRepo: messageRepo}
}

// HasUnread reports whether any of the chat's UnreadWindow latest messages
// lacks a receipt from userID. A chat without messages is read.
func (a *UnreadAggregator) HasUnread(ctx context.Context, chatID, userID string) (bool, error) {
	recent, err := a.MessageRepo.ListRecent(ctx, chatID, UnreadWindow)
	if err != nil {
		return false, err
	}
	if len(recent) == 0 {
		return false, nil
	}

	ids := make([]string, len(recent))
	for i, m := range recent {
		ids[i] = m.ID
	}
	read, err := a.MessageRepo.FindReadMessageIDs(ctx, userID, ids)
	if err != nil {
		return false, err
	}

	for _, m := range recent {
		if !read[m.ID] {
			return true, nil
		}
	}
	return false, nil
}

// Annotate computes HasUnread for every chat, preserving order.
func (a *UnreadAggregator) Annotate(ctx context.Context, chats []models.Chat, userID string) ([]ChatListItem, error) {
	items := make([]ChatListItem, 0, len(chats))
	for _, chat := range chats {
		unread, err := a.HasUnread(ctx, chat.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("unread state of chat %s: %w", chat.ID, err)
		}
		items = append(items, ChatListItem{Chat: chat, HasUnread: unread})
	}
	return items, nil
}
