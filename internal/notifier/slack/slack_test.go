package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/war"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	err := notifier.SendScanSummary(context.Background(), &war.ReconcileResult{Week: "Week-20240101"}, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotifSent("slack"))
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendImportSummary(context.Background(), &war.ImportResult{Weeks: 2}, "✅ History restored: 2 past weeks loaded.", false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent("slack"))
	assert.Equal(t, 0, metrics.NotifFailed("slack"))
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendScanSummary(context.Background(), &war.ReconcileResult{}, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent("slack"))
	assert.Equal(t, 1, metrics.NotifFailed("slack"))
}

func TestFormatScanSummary(t *testing.T) {
	msg := formatScanSummary(&war.ReconcileResult{RunID: "run-1", Week: "Week-20240101", CurrentDay: 2, DecksPossible: 8, Inserted: 3, Updated: 40})
	require.Len(t, msg.Blocks.BlockSet, 3)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Target so far: 8 decks per player.", section.Text.Text)
	require.Len(t, section.Fields, 4)
	assert.Equal(t, "*Week*\n`Week-20240101`", section.Fields[0].Text)
	assert.Equal(t, "*Day*\n2 of 4", section.Fields[1].Text)
	assert.Equal(t, "*Updated rows*\n40", section.Fields[3].Text)
}

func TestFormatImportSummary(t *testing.T) {
	msg := formatImportSummary(nil, "❌ API error: unable to download the race history.")
	assert.Len(t, msg.Blocks.BlockSet, 2, "Failed imports have no details block")

	msg = formatImportSummary(&war.ImportResult{Weeks: 10, Rows: 420, Skipped: 1, Refresh: true, Deleted: 400}, "ok")
	require.Len(t, msg.Blocks.BlockSet, 3)
	ctxBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok)
	text, ok := ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "10 weeks, 420 rows, 1 races skipped, 400 old rows cleared", text.Text)
}
