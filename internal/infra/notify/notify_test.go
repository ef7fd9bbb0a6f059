package notify_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/infra/notify"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestTelegramSendsToAdminChat(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	api := &fakeSender{}

	n := notify.NewTelegram(api, 42, log)
	n.Notify(context.Background(), "import clients", errors.New("line 3: phone cannot be empty"))

	require.Len(t, api.sent, 1)
	assert.Equal(t, int64(42), api.sent[0].ChatID)
	assert.Contains(t, api.sent[0].Text, "import clients")
	assert.Contains(t, api.sent[0].Text, "phone cannot be empty")
	assert.Empty(t, buf.String())

	api.err = errors.New("network down")
	n.Notify(context.Background(), "export", errors.New("disk full"))
	assert.Contains(t, buf.String(), "telegram send failed")
}

func TestMultiAndLog(t *testing.T) {
	var buf bytes.Buffer
	api := &fakeSender{}
	m := notify.Multi{
		notify.NewLog(slog.New(slog.NewJSONHandler(&buf, nil))),
		notify.NewTelegram(api, 1, slog.New(slog.NewJSONHandler(&buf, nil))),
	}
	m.Notify(context.Background(), "create plan", errors.New("bad"))
	assert.Contains(t, buf.String(), "create plan")
	assert.Len(t, api.sent, 1)
}
