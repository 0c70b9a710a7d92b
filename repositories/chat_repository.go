package repositories

import (
	"TeamChat/models"
	"context"
)

// ChatKey is the composite sort key of the chat list: updated_at DESC, id DESC.
type ChatKey struct {
	UpdatedAt int64
	ID        string
}

type ChatRepository interface {
	// CreateWithCreator inserts the chat and its creator membership atomically.
	CreateWithCreator(ctx context.Context, chat *models.Chat, member *models.ChatMember) error
	FindByID(ctx context.Context, id string) (models.Chat, error)
	// ListPage returns up to limit chats strictly after the given key, or from
	// the start when after is nil.
	ListPage(ctx context.Context, limit int, after *ChatKey) ([]models.Chat, error)
	FindMember(ctx context.Context, chatID, userID string) (models.ChatMember, error)
	ListMembers(ctx context.Context, chatID string) ([]models.ChatMember, error)
	SetMuted(ctx context.Context, chatID, userID string, muted bool) error
	CreateFileUpload(ctx context.Context, upload *models.FileUpload) error
	// DeleteCascade removes the chat and every row that references it.
	DeleteCascade(ctx context.Context, chatID string) error
}
