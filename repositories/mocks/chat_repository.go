package mocks

import (
	"TeamChat/models"
	"TeamChat/repositories"
	"context"

	"github.com/stretchr/testify/mock"
)

type ChatRepository struct {
	mock.Mock
}

func (m *ChatRepository) CreateWithCreator(ctx context.Context, chat *models.Chat, member *models.ChatMember) error {
	args := m.Called(ctx, chat, member)
	return args.Error(0)
}

func (m *ChatRepository) FindByID(ctx context.Context, id string) (models.Chat, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Chat), args.Error(1)
}

func (m *ChatRepository) ListPage(ctx context.Context, limit int, after *repositories.ChatKey) ([]models.Chat, error) {
	args := m.Called(ctx, limit, after)
	return args.Get(0).([]models.Chat), args.Error(1)
}

func (m *ChatRepository) FindMember(ctx context.Context, chatID, userID string) (models.ChatMember, error) {
	args := m.Called(ctx, chatID, userID)
	return args.Get(0).(models.ChatMember), args.Error(1)
}

func (m *ChatRepository) ListMembers(ctx context.Context, chatID string) ([]models.ChatMember, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).([]models.ChatMember), args.Error(1)
}

func (m *ChatRepository) SetMuted(ctx context.Context, chatID, userID string, muted bool) error {
	args := m.Called(ctx, chatID, userID, muted)
	return args.Error(0)
}

func (m *ChatRepository) CreateFileUpload(ctx context.Context, upload *models.FileUpload) error {
	args := m.Called(ctx, upload)
	return args.Error(0)
}

func (m *ChatRepository) DeleteCascade(ctx context.Context, chatID string) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}
