// Package notify forwards operational errors to whoever watches the workspace.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier interface {
	Notify(ctx context.Context, subject string, err error)
}

// Log writes notifications to a logger.
type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log { return &Log{log: log.With("component", "notify")} }

func (n *Log) Notify(_ context.Context, subject string, err error) {
	n.log.Warn(subject, "err", err)
}

// Sender is the part of tgbotapi.BotAPI the Telegram notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts notifications to the admin chat and falls back to the
// logger when sending fails.
type Telegram struct {
	api    Sender
	chatID int64
	log    *slog.Logger
}

func NewTelegram(api Sender, chatID int64, log *slog.Logger) *Telegram {
	return &Telegram{api: api, chatID: chatID, log: log.With("component", "notify")}
}

// Dial connects to the bot API with token.
func Dial(token string, chatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return NewTelegram(api, chatID, log), nil
}

func (n *Telegram) Notify(_ context.Context, subject string, err error) {
	var b strings.Builder
	b.WriteString("⚠️ ")
	b.WriteString(subject)
	if err != nil {
		b.WriteString("\n")
		b.WriteString(err.Error())
	}
	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, sendErr := n.api.Send(msg); sendErr != nil {
		n.log.Error("telegram send failed", "subject", subject, "err", sendErr, "cause", err)
	}
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, subject string, err error) {
	for _, n := range m {
		n.Notify(ctx, subject, err)
	}
}
