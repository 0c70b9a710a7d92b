package services

import (
	"TeamChat/interfaces"
	"TeamChat/models"
	"TeamChat/repositories"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

const maxChatNameLength = 100

type ChatService struct {
	ChatRepo    repositories.ChatRepository
	MessageRepo repositories.MessageRepository
	UserRepo    repositories.UserRepository
	Unread      *UnreadAggregator

	// Events and Notifications are optional.
	Events        interfaces.EventPublisher
	Notifications interfaces.NotificationQueue

	// RequireMembership restricts posting to chat members, except in
	// company-wide chats.
	RequireMembership bool

	// Now returns the current time in Unix milliseconds.
	Now func() int64
}

func NewChatService(chatRepo repositories.ChatRepository, messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *ChatService {
	return &ChatService{
		ChatRepo:    chatRepo,
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Unread:      NewUnreadAggregator(messageRepo),
		Now:         func() int64 { return time.Now().UnixMilli() },
	}
}

type CreateChatInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	Department  *string `json:"department"`
	Image       *string `json:"image"`
}

// ListChatsResult is one page of the chat list. NextCursor is nil once the
// list is exhausted.
type ListChatsResult struct {
	Chats      []ChatListItem `json:"chats"`
	NextCursor *string        `json:"nextCursor"`
}

// Create inserts a chat and makes the caller its admin. Returns the chat id.
func (s *ChatService) Create(ctx context.Context, callerID string, input CreateChatInput) (string, error) {
	if callerID == "" {
		return "", ErrUnauthorized
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", fieldError("name", "is required")
	}
	if utf8.RuneCountInString(name) > maxChatNameLength {
		return "", fieldError("name", fmt.Sprintf("must be at most %d characters", maxChatNameLength))
	}

	category := input.Category
	if category == "" {
		category = models.CategoryCompanyWide
	}
	if !models.IsValidCategory(category) {
		return "", fieldError("category", "must be one of: company-wide department project private")
	}

	description := models.DefaultChatDescription
	if input.Description != nil && strings.TrimSpace(*input.Description) != "" {
		description = strings.TrimSpace(*input.Description)
	}

	now := s.Now()
	chat := &models.Chat{
		Name:        name,
		Description: &description,
		CreatedBy:   callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Category:    category,
		Department:  input.Department,
		Image:       input.Image,
	}
	member := &models.ChatMember{
		UserID:   callerID,
		Role:     models.RoleAdmin,
		JoinedAt: now,
		IsMuted:  false,
	}

	if err := s.ChatRepo.CreateWithCreator(ctx, chat, member); err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}

	log.Info("chat created", "chat_id", chat.ID, "created_by", callerID, "category", category)
	s.publish(interfaces.EventChatCreated, chat.ID, callerID, chat)
	return chat.ID, nil
}

// List returns a page of chats ordered by (updatedAt, id) descending with the
// caller's unread flags. Without a caller it returns an empty page.
func (s *ChatService) List(ctx context.Context, callerID string, limit int, cursor string) (ListChatsResult, error) {
	empty := ListChatsResult{Chats: []ChatListItem{}}
	if callerID == "" {
		return empty, nil
	}

	after, err := ParseCursor(cursor)
	if err != nil {
		return empty, err
	}
	limit = normalizeLimit(limit)

	chats, err := s.ChatRepo.ListPage(ctx, limit, after)
	if err != nil {
		return empty, fmt.Errorf("list chats: %w", err)
	}

	items, err := s.Unread.Annotate(ctx, chats, callerID)
	if err != nil {
		return empty, err
	}

	result := ListChatsResult{Chats: items}
	if len(chats) == limit {
		next := EncodeCursor(chats[len(chats)-1])
		result.NextCursor = &next
	}
	return result, nil
}

// Get returns the chat or nil when it does not exist.
func (s *ChatService) Get(ctx context.Context, callerID, chatID string) (*models.Chat, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}

	chat, err := s.ChatRepo.FindByID(ctx, chatID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetCurrentUser fails without a caller; a caller with no user row yields nil.
func (s *ChatService) GetCurrentUser(ctx context.Context, callerID string) (*models.User, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.UserRepo.FindByID(ctx, callerID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkChatRead adds a receipt for every visible message of the chat that the
// caller has not read yet.
func (s *ChatService) MarkChatRead(ctx context.Context, callerID, chatID string) (bool, error) {
	if callerID == "" {
		return false, ErrUnauthorized
	}
	if _, err := s.ChatRepo.FindByID(ctx, chatID); err != nil {
		return false, fmt.Errorf("chat %s: %w", chatID, err)
	}

	ids, err := s.MessageRepo.ListIDsByChat(ctx, chatID)
	if err != nil {
		return false, err
	}
	added, err := s.MessageRepo.InsertReads(ctx, ids, callerID, s.Now())
	if err != nil {
		return false, fmt.Errorf("mark chat read: %w", err)
	}

	if added > 0 {
		s.publish(interfaces.EventChatRead, chatID, callerID, nil)
	}
	return true, nil
}

// DeleteChat removes the chat and everything that references it. Only the
// creator or a chat admin may delete.
func (s *ChatService) DeleteChat(ctx context.Context, callerID, chatID string) (bool, error) {
	if callerID == "" {
		return false, ErrUnauthorized
	}

	chat, err := s.ChatRepo.FindByID(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("chat %s: %w", chatID, err)
	}

	allowed, err := s.canAdminister(ctx, chat, callerID)
	if err != nil {
		return false, err
	}
	if !allowed {
		return false, fmt.Errorf("%w: only the creator or an admin can delete this chat", ErrForbidden)
	}

	if err := s.ChatRepo.DeleteCascade(ctx, chatID); err != nil {
		return false, fmt.Errorf("delete chat %s: %w", chatID, err)
	}

	log.Info("chat deleted", "chat_id", chatID, "deleted_by", callerID)
	s.publish(interfaces.EventChatDeleted, chatID, callerID, nil)
	return true, nil
}

// SetMuted toggles notifications of the chat for the caller's membership.
func (s *ChatService) SetMuted(ctx context.Context, callerID, chatID string, muted bool) error {
	if callerID == "" {
		return ErrUnauthorized
	}
	if err := s.ChatRepo.SetMuted(ctx, chatID, callerID, muted); err != nil {
		return fmt.Errorf("membership of %s in %s: %w", callerID, chatID, err)
	}
	return nil
}

type AttachFileInput struct {
	MessageID *string `json:"messageId"`
	FileName  string  `json:"fileName" validate:"required,max=255"`
	FileType  string  `json:"fileType" validate:"required,max=128"`
	FileURL   string  `json:"fileUrl" validate:"required,url"`
}

// AttachFile records file metadata against the chat, or against one of its
// messages when MessageID is set.
func (s *ChatService) AttachFile(ctx context.Context, callerID, chatID string, input AttachFileInput) (models.FileUpload, error) {
	if callerID == "" {
		return models.FileUpload{}, ErrUnauthorized
	}
	if err := validateStruct(input); err != nil {
		return models.FileUpload{}, err
	}
	if _, err := s.ChatRepo.FindByID(ctx, chatID); err != nil {
		return models.FileUpload{}, fmt.Errorf("chat %s: %w", chatID, err)
	}

	attachment := models.AttachmentChat
	if input.MessageID != nil && *input.MessageID != "" {
		msg, err := s.MessageRepo.FindByID(ctx, *input.MessageID)
		if err != nil {
			return models.FileUpload{}, fmt.Errorf("message %s: %w", *input.MessageID, err)
		}
		if msg.ChatID != chatID {
			return models.FileUpload{}, fieldError("messageId", "belongs to another chat")
		}
		attachment = models.AttachmentMessage
	} else {
		input.MessageID = nil
	}

	upload := models.FileUpload{
		FileName:       input.FileName,
		FileType:       input.FileType,
		FileURL:        input.FileURL,
		UploadedBy:     callerID,
		UploadedAt:     s.Now(),
		MessageID:      input.MessageID,
		ChatID:         &chatID,
		AttachmentType: &attachment,
	}
	if err := s.ChatRepo.CreateFileUpload(ctx, &upload); err != nil {
		return models.FileUpload{}, fmt.Errorf("store file metadata: %w", err)
	}
	return upload, nil
}

func (s *ChatService) canAdminister(ctx context.Context, chat models.Chat, userID string) (bool, error) {
	if chat.CreatedBy == userID {
		return true, nil
	}
	member, err := s.ChatRepo.FindMember(ctx, chat.ID, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return member.Role == models.RoleAdmin, nil
}

func (s *ChatService) publish(eventType, chatID, userID string, payload interface{}) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(interfaces.ChangeEvent{
		Type:      eventType,
		ChatID:    chatID,
		UserID:    userID,
		Payload:   payload,
		Timestamp: s.Now(),
	})
}
