package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/notifier"
	"github.com/mauv0809/riverwatch/internal/war"
	"github.com/slack-go/slack"
)

const channelName = "slack"

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed(channelName)
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent(channelName)
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendScanSummary(ctx context.Context, result *war.ReconcileResult, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, formatScanSummary(result), dryRun)
	return err
}

func (s *Notifier) SendImportSummary(ctx context.Context, result *war.ImportResult, status string, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, formatImportSummary(result, status), dryRun)
	return err
}

// formatScanSummary creates the Slack message for a finished reconciliation using Block Kit.
func formatScanSummary(result *war.ReconcileResult) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", "⚔️ War scan finished", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Week*\n`%s`", result.Week), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Day*\n%d of %d", result.CurrentDay, war.BattleDays), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*New rows*\n%d", result.Inserted), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Updated rows*\n%d", result.Updated), false, false),
	}
	summary := fmt.Sprintf("Target so far: %d decks per player.", result.DecksPossible)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", summary, true, false), fields, nil))

	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "Run "+result.RunID, false, false)))
	return slack.NewBlockMessage(blocks...)
}

// formatImportSummary creates the Slack message for a historical import.
func formatImportSummary(result *war.ImportResult, status string) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", "📚 War history import", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", status, true, false), nil, nil))

	if result != nil {
		details := fmt.Sprintf("%d weeks, %d rows, %d races skipped", result.Weeks, result.Rows, result.Skipped)
		if result.Refresh {
			details += fmt.Sprintf(", %d old rows cleared", result.Deleted)
		}
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", details, false, false)))
	}
	return slack.NewBlockMessage(blocks...)
}
