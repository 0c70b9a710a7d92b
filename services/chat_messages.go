package services

import (
	"TeamChat/interfaces"
	"TeamChat/models"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

const maxMessageLength = 10000

// SenderSummary is the public part of a user shown next to a message.
type SenderSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image,omitempty"`
}

type MessageWithSender struct {
	models.Message
	Sender *SenderSummary `json:"sender,omitempty"`
}

type SendMessageInput struct {
	ChatID          string  `json:"chatId"`
	Content         string  `json:"content"`
	ParentMessageID *string `json:"parentMessageId"`
}

// GetMessages returns the chat's visible messages, newest first, with sender
// summaries. A missing chat yields nil.
func (s *ChatService) GetMessages(ctx context.Context, callerID, chatID string) ([]MessageWithSender, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if _, err := s.ChatRepo.FindByID(ctx, chatID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	messages, err := s.MessageRepo.ListByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return s.withSenders(ctx, messages)
}

// GetThread returns the replies to a message, oldest first.
func (s *ChatService) GetThread(ctx context.Context, callerID, messageID string) ([]MessageWithSender, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if _, err := s.MessageRepo.FindByID(ctx, messageID); err != nil {
		return nil, fmt.Errorf("message %s: %w", messageID, err)
	}

	replies, err := s.MessageRepo.ListReplies(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return s.withSenders(ctx, replies)
}

// SendMessage stores a message and advances the chat's updatedAt to its
// timestamp. Returns the message id.
func (s *ChatService) SendMessage(ctx context.Context, callerID string, input SendMessageInput) (string, error) {
	if callerID == "" {
		return "", ErrUnauthorized
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return "", fieldError("content", "is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return "", fieldError("content", fmt.Sprintf("must be at most %d characters", maxMessageLength))
	}

	chat, err := s.ChatRepo.FindByID(ctx, input.ChatID)
	if err != nil {
		return "", fmt.Errorf("chat %s: %w", input.ChatID, err)
	}

	if s.RequireMembership && chat.Category != models.CategoryCompanyWide {
		if _, err := s.ChatRepo.FindMember(ctx, chat.ID, callerID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return "", fmt.Errorf("%w: not a member of this chat", ErrForbidden)
			}
			return "", err
		}
	}

	if input.ParentMessageID != nil && *input.ParentMessageID != "" {
		parent, err := s.MessageRepo.FindByID(ctx, *input.ParentMessageID)
		if err != nil {
			return "", fmt.Errorf("parent message %s: %w", *input.ParentMessageID, err)
		}
		if parent.ChatID != chat.ID {
			return "", fieldError("parentMessageId", "belongs to another chat")
		}
	} else {
		input.ParentMessageID = nil
	}

	msg := &models.Message{
		ChatID:          chat.ID,
		SenderID:        callerID,
		Content:         content,
		Timestamp:       s.Now(),
		ParentMessageID: input.ParentMessageID,
	}
	if err := s.MessageRepo.Create(ctx, msg); err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	s.publish(interfaces.EventMessageSent, chat.ID, callerID, msg)
	s.enqueueNotification(ctx, msg)
	return msg.ID, nil
}

// MarkMessageRead adds the caller's receipt unless it already exists.
func (s *ChatService) MarkMessageRead(ctx context.Context, callerID, messageID string) (bool, error) {
	if callerID == "" {
		return false, ErrUnauthorized
	}

	msg, err := s.MessageRepo.FindByID(ctx, messageID)
	if err != nil {
		return false, fmt.Errorf("message %s: %w", messageID, err)
	}
	if msg.DeletedAt != nil {
		return false, fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}

	if _, err := s.MessageRepo.InsertRead(ctx, msg.ID, callerID, s.Now()); err != nil {
		return false, fmt.Errorf("mark message read: %w", err)
	}
	return true, nil
}

// EditMessage replaces the content of the caller's own message and keeps the
// previous content in the edit history.
func (s *ChatService) EditMessage(ctx context.Context, callerID, messageID, content string) (models.Message, error) {
	if callerID == "" {
		return models.Message{}, ErrUnauthorized
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return models.Message{}, fieldError("content", "is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return models.Message{}, fieldError("content", fmt.Sprintf("must be at most %d characters", maxMessageLength))
	}

	msg, err := s.visibleMessage(ctx, messageID)
	if err != nil {
		return models.Message{}, err
	}
	if msg.SenderID != callerID {
		return models.Message{}, fmt.Errorf("%w: only the sender can edit a message", ErrForbidden)
	}
	if msg.Content == content {
		return msg, nil
	}

	now := s.Now()
	edit := &models.MessageEdit{
		MessageID:  msg.ID,
		EditedBy:   callerID,
		OldContent: msg.Content,
		EditedAt:   now,
	}
	msg.Content = content
	msg.EditedAt = &now

	if err := s.MessageRepo.UpdateContent(ctx, &msg, edit); err != nil {
		return models.Message{}, fmt.Errorf("edit message: %w", err)
	}

	s.publish(interfaces.EventMessageUpdated, msg.ChatID, callerID, msg)
	return msg, nil
}

// DeleteMessage soft-deletes a message. The sender, the chat creator and chat
// admins may delete.
func (s *ChatService) DeleteMessage(ctx context.Context, callerID, messageID string) (bool, error) {
	if callerID == "" {
		return false, ErrUnauthorized
	}

	msg, err := s.visibleMessage(ctx, messageID)
	if err != nil {
		return false, err
	}

	if msg.SenderID != callerID {
		chat, err := s.ChatRepo.FindByID(ctx, msg.ChatID)
		if err != nil {
			return false, fmt.Errorf("chat %s: %w", msg.ChatID, err)
		}
		allowed, err := s.canAdminister(ctx, chat, callerID)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, fmt.Errorf("%w: cannot delete another user's message", ErrForbidden)
		}
	}

	if err := s.MessageRepo.SoftDelete(ctx, msg.ID, s.Now()); err != nil {
		return false, fmt.Errorf("delete message: %w", err)
	}

	s.publish(interfaces.EventMessageDeleted, msg.ChatID, callerID, map[string]string{"messageId": msg.ID})
	return true, nil
}

// ToggleReaction adds or removes the caller's reaction and reports whether
// the reaction is set afterwards.
func (s *ChatService) ToggleReaction(ctx context.Context, callerID, messageID, reaction string) (bool, error) {
	if callerID == "" {
		return false, ErrUnauthorized
	}

	reaction = strings.TrimSpace(reaction)
	if reaction == "" {
		return false, fieldError("reaction", "is required")
	}
	if utf8.RuneCountInString(reaction) > 64 {
		return false, fieldError("reaction", "must be at most 64 characters")
	}

	msg, err := s.visibleMessage(ctx, messageID)
	if err != nil {
		return false, err
	}

	set, err := s.MessageRepo.ToggleReaction(ctx, msg.ID, callerID, reaction, s.Now())
	if err != nil {
		return false, fmt.Errorf("toggle reaction: %w", err)
	}

	s.publish(interfaces.EventMessageUpdated, msg.ChatID, callerID, map[string]interface{}{
		"messageId": msg.ID,
		"reaction":  reaction,
		"set":       set,
	})
	return set, nil
}

// PinMessage pins or unpins a message.
func (s *ChatService) PinMessage(ctx context.Context, callerID, messageID string, pinned bool) error {
	if callerID == "" {
		return ErrUnauthorized
	}

	msg, err := s.visibleMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.MessageRepo.SetPinned(ctx, msg.ID, pinned, callerID, s.Now()); err != nil {
		return fmt.Errorf("pin message: %w", err)
	}

	s.publish(interfaces.EventMessageUpdated, msg.ChatID, callerID, map[string]interface{}{
		"messageId": msg.ID,
		"isPinned":  pinned,
	})
	return nil
}

func (s *ChatService) visibleMessage(ctx context.Context, messageID string) (models.Message, error) {
	msg, err := s.MessageRepo.FindByID(ctx, messageID)
	if err != nil {
		return models.Message{}, fmt.Errorf("message %s: %w", messageID, err)
	}
	if msg.DeletedAt != nil {
		return models.Message{}, fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}
	return msg, nil
}

func (s *ChatService) withSenders(ctx context.Context, messages []models.Message) ([]MessageWithSender, error) {
	seen := make(map[string]bool)
	var senderIDs []string
	for _, m := range messages {
		if !seen[m.SenderID] {
			seen[m.SenderID] = true
			senderIDs = append(senderIDs, m.SenderID)
		}
	}

	users, err := s.UserRepo.FindByIDs(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("load senders: %w", err)
	}
	senders := make(map[string]*SenderSummary, len(users))
	for _, u := range users {
		senders[u.ID] = &SenderSummary{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
	}

	result := make([]MessageWithSender, 0, len(messages))
	for _, m := range messages {
		result = append(result, MessageWithSender{Message: m, Sender: senders[m.SenderID]})
	}
	return result, nil
}

func (s *ChatService) enqueueNotification(ctx context.Context, msg *models.Message) {
	if s.Notifications == nil {
		return
	}
	err := s.Notifications.EnqueueNewMessage(ctx, interfaces.NewMessageNotification{
		ChatID:    msg.ChatID,
		MessageID: msg.ID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
	})
	if err != nil {
		log.Warn("failed to enqueue push notification", "message_id", msg.ID, "err", err)
	}
}
