package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/war"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSender records every message passed to Send.
type mockSender struct {
	sent    []tgbotapi.Chattable
	sendErr error
}

func (m *mockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.sent = append(m.sent, c)
	return tgbotapi.Message{}, m.sendErr
}

func TestNotifier_SendScanSummary(t *testing.T) {
	api := &mockSender{}
	metr := metrics.NewMock()
	n := NewNotifier(api, -100123, metr)

	err := n.SendScanSummary(context.Background(), &war.ReconcileResult{Week: "Week-20240101"}, false)
	require.NoError(t, err)
	require.Len(t, api.sent, 1)

	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100123), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "Week-20240101")
	assert.Equal(t, 1, metr.NotifSent("telegram"))
}

func TestNotifier_DryRunSendsNothing(t *testing.T) {
	api := &mockSender{}
	n := NewNotifier(api, 1, metrics.NewMock())

	require.NoError(t, n.SendImportSummary(context.Background(), nil, "status", true))
	assert.Empty(t, api.sent)
}

func TestNotifier_Failure(t *testing.T) {
	api := &mockSender{sendErr: errors.New("bot was blocked by the user")}
	metr := metrics.NewMock()
	n := NewNotifier(api, 1, metr)

	err := n.SendImportSummary(context.Background(), &war.ImportResult{}, "status", false)
	require.Error(t, err)
	assert.Equal(t, 1, metr.NotifFailed("telegram"))
}
