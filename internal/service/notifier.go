package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Roma7-7-7/telegram"
)

//go:generate mockgen -package mocks -destination mocks/telegram.go . TelegramClient

type TelegramClient interface {
	SendMessage(context.Context, string, string) error
}

// ChatNotifier delivers messages to a single chat on a best-effort basis.
type ChatNotifier struct {
	telegram TelegramClient
	chatID   string

	log *slog.Logger
}

func NewChatNotifier(telegram TelegramClient, chatID string, log *slog.Logger) *ChatNotifier {
	return &ChatNotifier{
		telegram: telegram,
		chatID:   chatID,

		log: log.With("component", "service").With("service", "notifier"),
	}
}

// Notify sends msg to the chat. Delivery errors are logged and never returned.
func (n *ChatNotifier) Notify(ctx context.Context, msg string) {
	err := n.telegram.SendMessage(ctx, n.chatID, msg)
	if err == nil {
		n.log.DebugContext(ctx, "message sent", "message", msg)
		return
	}

	if errors.Is(err, telegram.ErrForbidden) {
		n.log.WarnContext(ctx, "bot is blocked or removed from the chat", "chatID", n.chatID, "error", err)
		return
	}

	n.log.ErrorContext(ctx, "failed to send message", "chatID", n.chatID, "error", err)
}
