package controllers_test

import (
	"TeamChat/models"
	"TeamChat/services"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Create(ctx context.Context, callerID string, input services.CreateChatInput) (string, error) {
	args := m.Called(callerID, input)
	return args.String(0), args.Error(1)
}

func (m *MockChatService) List(ctx context.Context, callerID string, limit int, cursor string) (services.ListChatsResult, error) {
	args := m.Called(callerID, limit, cursor)
	return args.Get(0).(services.ListChatsResult), args.Error(1)
}

func (m *MockChatService) Get(ctx context.Context, callerID, chatID string) (*models.Chat, error) {
	args := m.Called(callerID, chatID)
	chat, _ := args.Get(0).(*models.Chat)
	return chat, args.Error(1)
}

func (m *MockChatService) GetCurrentUser(ctx context.Context, callerID string) (*models.User, error) {
	args := m.Called(callerID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockChatService) GetMessages(ctx context.Context, callerID, chatID string) ([]services.MessageWithSender, error) {
	args := m.Called(callerID, chatID)
	msgs, _ := args.Get(0).([]services.MessageWithSender)
	return msgs, args.Error(1)
}

func (m *MockChatService) GetThread(ctx context.Context, callerID, messageID string) ([]services.MessageWithSender, error) {
	args := m.Called(callerID, messageID)
	msgs, _ := args.Get(0).([]services.MessageWithSender)
	return msgs, args.Error(1)
}

func (m *MockChatService) SendMessage(ctx context.Context, callerID string, input services.SendMessageInput) (string, error) {
	args := m.Called(callerID, input)
	return args.String(0), args.Error(1)
}

func (m *MockChatService) MarkMessageRead(ctx context.Context, callerID, messageID string) (bool, error) {
	args := m.Called(callerID, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChatService) MarkChatRead(ctx context.Context, callerID, chatID string) (bool, error) {
	args := m.Called(callerID, chatID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChatService) DeleteChat(ctx context.Context, callerID, chatID string) (bool, error) {
	args := m.Called(callerID, chatID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChatService) EditMessage(ctx context.Context, callerID, messageID, content string) (models.Message, error) {
	args := m.Called(callerID, messageID, content)
	return args.Get(0).(models.Message), args.Error(1)
}

func (m *MockChatService) DeleteMessage(ctx context.Context, callerID, messageID string) (bool, error) {
	args := m.Called(callerID, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChatService) ToggleReaction(ctx context.Context, callerID, messageID, reaction string) (bool, error) {
	args := m.Called(callerID, messageID, reaction)
	return args.Bool(0), args.Error(1)
}

func (m *MockChatService) PinMessage(ctx context.Context, callerID, messageID string, pinned bool) error {
	args := m.Called(callerID, messageID, pinned)
	return args.Error(0)
}

func (m *MockChatService) AttachFile(ctx context.Context, callerID, chatID string, input services.AttachFileInput) (models.FileUpload, error) {
	args := m.Called(callerID, chatID, input)
	return args.Get(0).(models.FileUpload), args.Error(1)
}

func (m *MockChatService) SetMuted(ctx context.Context, callerID, chatID string, muted bool) error {
	args := m.Called(callerID, chatID, muted)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, input services.SignUpInput) (services.AuthResult, error) {
	args := m.Called(input)
	return args.Get(0).(services.AuthResult), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, input services.SignInInput) (services.AuthResult, error) {
	args := m.Called(input)
	return args.Get(0).(services.AuthResult), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CurrentUser(ctx context.Context, callerID string) (*models.User, error) {
	args := m.Called(callerID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, callerID string, input services.UpdateProfileInput) (models.User, error) {
	args := m.Called(callerID, input)
	return args.Get(0).(models.User), args.Error(1)
}
