package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/charmbracelet/log"
)

// FCMSender delivers push notifications through Firebase Cloud Messaging.
type FCMSender struct {
	Client *messaging.Client
}

func NewFCMSender(ctx context.Context, app *firebase.App) (*FCMSender, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing FCM client: %w", err)
	}
	return &FCMSender{Client: client}, nil
}

func (s *FCMSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return fmt.Errorf("device token is empty")
	}

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Token: token,
	}

	resp, err := s.Client.Send(ctx, message)
	if err != nil {
		return err
	}
	log.Debug("[FCM] notification sent", "id", resp)
	return nil
}

// LogSender stands in for FCM when no credentials are configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	log.Info("[FCM] disabled, dropping notification", "title", title, "chat_id", data["chat_id"])
	return nil
}
