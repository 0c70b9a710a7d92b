package services

import (
	"TeamChat/interfaces"
	"TeamChat/models"
	"TeamChat/repositories"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

const maxPushBodyLength = 120

// NotificationService turns new messages into push notifications for the
// chat's audience.
type NotificationService struct {
	Sender   interfaces.PushSender
	ChatRepo repositories.ChatRepository
	UserRepo repositories.UserRepository
}

func NewNotificationService(sender interfaces.PushSender, chatRepo repositories.ChatRepository, userRepo repositories.UserRepository) *NotificationService {
	return &NotificationService{Sender: sender, ChatRepo: chatRepo, UserRepo: userRepo}
}

// NotifyNewMessage pushes the message to every recipient with a device token.
// It fails only when every delivery attempt failed.
func (s *NotificationService) NotifyNewMessage(ctx context.Context, n interfaces.NewMessageNotification) error {
	chat, err := s.ChatRepo.FindByID(ctx, n.ChatID)
	if errors.Is(err, ErrNotFound) {
		log.Debug("[FCM] chat gone, skipping notification", "chat_id", n.ChatID)
		return nil
	}
	if err != nil {
		return err
	}

	recipients, err := s.Recipients(ctx, chat, n.SenderID)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}
	if len(recipients) == 0 {
		return nil
	}

	title := chat.Name
	body := n.Content
	if sender, err := s.UserRepo.FindByID(ctx, n.SenderID); err == nil {
		body = sender.Name + ": " + body
	}
	body = truncate(body, maxPushBodyLength)

	data := map[string]string{
		"type":       interfaces.EventMessageSent,
		"chat_id":    n.ChatID,
		"message_id": n.MessageID,
	}

	var failures []error
	for _, u := range recipients {
		if err := s.Sender.Send(ctx, *u.PushToken, title, body, data); err != nil {
			log.Warn("[FCM] delivery failed", "user_id", u.ID, "err", err)
			failures = append(failures, err)
		}
	}

	if len(failures) == len(recipients) {
		return fmt.Errorf("push to %d recipients failed: %w", len(recipients), errors.Join(failures...))
	}
	log.Info("[FCM] notified recipients", "message_id", n.MessageID, "sent", len(recipients)-len(failures))
	return nil
}

// Recipients returns the users to notify about a message from senderID.
// Company-wide chats reach every user, other chats reach non-muted members.
// Users without a push token are dropped.
func (s *NotificationService) Recipients(ctx context.Context, chat models.Chat, senderID string) ([]models.User, error) {
	if chat.Category == models.CategoryCompanyWide {
		return s.UserRepo.ListWithPushTokens(ctx, senderID)
	}

	members, err := s.ChatRepo.ListMembers(ctx, chat.ID)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, m := range members {
		if m.IsMuted || m.UserID == senderID {
			continue
		}
		ids = append(ids, m.UserID)
	}

	users, err := s.UserRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	result := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.PushToken != nil && *u.PushToken != "" {
			result = append(result, u)
		}
	}
	return result, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
