package mocks

import (
	"TeamChat/models"
	"context"

	"github.com/stretchr/testify/mock"
)

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) FindByID(ctx context.Context, id string) (models.Message, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Message), args.Error(1)
}

func (m *MessageRepository) ListByChat(ctx context.Context, chatID string) ([]models.Message, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MessageRepository) ListRecent(ctx context.Context, chatID string, n int) ([]models.Message, error) {
	args := m.Called(ctx, chatID, n)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MessageRepository) ListReplies(ctx context.Context, parentID string) ([]models.Message, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MessageRepository) ListIDsByChat(ctx context.Context, chatID string) ([]string, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MessageRepository) FindReadMessageIDs(ctx context.Context, userID string, messageIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, userID, messageIDs)
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MessageRepository) InsertRead(ctx context.Context, messageID, userID string, readAt int64) (bool, error) {
	args := m.Called(ctx, messageID, userID, readAt)
	return args.Bool(0), args.Error(1)
}

func (m *MessageRepository) InsertReads(ctx context.Context, messageIDs []string, userID string, readAt int64) (int64, error) {
	args := m.Called(ctx, messageIDs, userID, readAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) UpdateContent(ctx context.Context, msg *models.Message, edit *models.MessageEdit) error {
	args := m.Called(ctx, msg, edit)
	return args.Error(0)
}

func (m *MessageRepository) SoftDelete(ctx context.Context, id string, deletedAt int64) error {
	args := m.Called(ctx, id, deletedAt)
	return args.Error(0)
}

func (m *MessageRepository) SetPinned(ctx context.Context, id string, pinned bool, by string, at int64) error {
	args := m.Called(ctx, id, pinned, by, at)
	return args.Error(0)
}

func (m *MessageRepository) ToggleReaction(ctx context.Context, messageID, userID, reaction string, at int64) (bool, error) {
	args := m.Called(ctx, messageID, userID, reaction, at)
	return args.Bool(0), args.Error(1)
}
