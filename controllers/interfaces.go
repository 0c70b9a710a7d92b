package controllers

import (
	"TeamChat/models"
	"TeamChat/services"
	"context"
)

// ChatServiceInterface is the chat surface the handlers depend on.
type ChatServiceInterface interface {
	Create(ctx context.Context, callerID string, input services.CreateChatInput) (string, error)
	List(ctx context.Context, callerID string, limit int, cursor string) (services.ListChatsResult, error)
	Get(ctx context.Context, callerID, chatID string) (*models.Chat, error)
	GetCurrentUser(ctx context.Context, callerID string) (*models.User, error)
	GetMessages(ctx context.Context, callerID, chatID string) ([]services.MessageWithSender, error)
	GetThread(ctx context.Context, callerID, messageID string) ([]services.MessageWithSender, error)
	SendMessage(ctx context.Context, callerID string, input services.SendMessageInput) (string, error)
	MarkMessageRead(ctx context.Context, callerID, messageID string) (bool, error)
	MarkChatRead(ctx context.Context, callerID, chatID string) (bool, error)
	DeleteChat(ctx context.Context, callerID, chatID string) (bool, error)
	EditMessage(ctx context.Context, callerID, messageID, content string) (models.Message, error)
	DeleteMessage(ctx context.Context, callerID, messageID string) (bool, error)
	ToggleReaction(ctx context.Context, callerID, messageID, reaction string) (bool, error)
	PinMessage(ctx context.Context, callerID, messageID string, pinned bool) error
	AttachFile(ctx context.Context, callerID, chatID string, input services.AttachFileInput) (models.FileUpload, error)
	SetMuted(ctx context.Context, callerID, chatID string, muted bool) error
}

type AuthServiceInterface interface {
	SignUp(ctx context.Context, input services.SignUpInput) (services.AuthResult, error)
	SignIn(ctx context.Context, input services.SignInInput) (services.AuthResult, error)
}

type UserServiceInterface interface {
	CurrentUser(ctx context.Context, callerID string) (*models.User, error)
	UpdateProfile(ctx context.Context, callerID string, input services.UpdateProfileInput) (models.User, error)
}
