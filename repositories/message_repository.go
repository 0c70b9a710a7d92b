package repositories

import (
	"TeamChat/models"
	"context"
)

// Message listings never include soft-deleted rows.
type MessageRepository interface {
	// Create inserts the message and advances the chat's updated_at to the
	// message timestamp in the same transaction.
	Create(ctx context.Context, msg *models.Message) error
	FindByID(ctx context.Context, id string) (models.Message, error)
	ListByChat(ctx context.Context, chatID string) ([]models.Message, error)
	ListRecent(ctx context.Context, chatID string, n int) ([]models.Message, error)
	ListReplies(ctx context.Context, parentID string) ([]models.Message, error)
	ListIDsByChat(ctx context.Context, chatID string) ([]string, error)

	// FindReadMessageIDs returns the subset of messageIDs the user has a receipt for.
	FindReadMessageIDs(ctx context.Context, userID string, messageIDs []string) (map[string]bool, error)
	// InsertRead adds a receipt unless one exists and reports whether a row was added.
	InsertRead(ctx context.Context, messageID, userID string, readAt int64) (bool, error)
	// InsertReads applies InsertRead to every id and returns the number of rows added.
	InsertReads(ctx context.Context, messageIDs []string, userID string, readAt int64) (int64, error)

	UpdateContent(ctx context.Context, msg *models.Message, edit *models.MessageEdit) error
	SoftDelete(ctx context.Context, id string, deletedAt int64) error
	SetPinned(ctx context.Context, id string, pinned bool, by string, at int64) error
	// ToggleReaction adds the reaction or removes it when present and reports whether it is now set.
	ToggleReaction(ctx context.Context, messageID, userID, reaction string, at int64) (bool, error)
}
