package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/riverwatch/internal/war"
)

// MaxMessageLength keeps chunks below Telegram's 4096 character limit.
const MaxMessageLength = 4000

const (
	weekNameWidth    = 9
	historyNameWidth = 8
)

// NewHTMLMessage builds an HTML-formatted text message for chatID.
func NewHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	return msg
}

// FormatWeek renders the live weekly standing as one or more HTML messages.
func FormatWeek(report *war.WeekReport) []string {
	columns := "<code>St| Name      | Tot  | Fame  </code>\n"
	c := newChunker(
		"🏆 <b>WEEKLY PROGRESS</b>\n"+columns+"<code>--|-----------|------|-------</code>\n",
		"🏆 <b>PROGRESS (cont.)</b>\n"+columns,
	)
	for _, r := range report.Rows {
		c.add(fmt.Sprintf("%s| <code>%s | %2d/%-2d | %5s </code>\n",
			r.Status.Icon(), cell(r.Name, weekNameWidth), r.DecksUsed, report.DecksPossible, FormatFame(r.Fame)))
	}
	return c.messages()
}

// FormatToday renders today's attacks as one or more HTML messages.
func FormatToday(report *war.TodayReport) []string {
	if report.Training {
		return []string{"🛡 <b>Training days.</b>\nNo river attacks are available today."}
	}
	var out []string
	if report.BattleOver {
		out = append(out, "🏁 <b>Battle days are over.</b>")
	}
	columns := "<code>St| Name      | Today</code>\n"
	c := newChunker(
		fmt.Sprintf("⚔️ <b>WAR: DAY %d</b> (today)\n", report.Day)+columns+"<code>--|-----------|------</code>\n",
		"⚔️ <b>CURRENT DAY (cont.)</b>\n"+columns,
	)
	for _, r := range report.Rows {
		c.add(fmt.Sprintf("%s| <code>%s | %d/%d </code>\n",
			r.Status.Icon(), cell(r.Name, weekNameWidth), r.DecksToday, war.DecksPerDay))
	}
	return append(out, c.messages()...)
}

// FormatHistory renders the settled-week totals as one or more HTML messages.
func FormatHistory(report *war.HistoryReport) []string {
	if len(report.Rows) == 0 {
		return []string{"⚠️ Database empty. Wait for the automatic restore or use /importa."}
	}
	c := newChunker(
		fmt.Sprintf("📊 <b>HISTORY: PAST %d WEEKS</b>\n<code>St| Name     | Decks  | Fame </code>\n<code>--|----------|--------|------</code>\n", report.Weeks),
		"📊 <b>HISTORY (cont.)</b>\n<code>St| Name     | Decks  | Fame </code>\n",
	)
	for _, r := range report.Rows {
		newMark := ""
		if r.New {
			newMark = "🆕"
		}
		c.add(fmt.Sprintf("%s| <code>%s %s|%3d/%-3d|%5s</code> %.0f%%\n",
			r.Status.Icon(), cell(r.Name, historyNameWidth), newMark, r.DecksUsed, r.DecksPossible, FormatFame(r.Fame), r.Participation))
	}
	return c.messages()
}

// FormatScanSummary renders a reconciliation result.
func FormatScanSummary(result *war.ReconcileResult) string {
	title := "✅ <b>Database updated!</b>"
	if result.DryRun {
		title = "🧪 <b>Dry run, nothing written.</b>"
	}
	return fmt.Sprintf("%s\nWeek: <code>%s</code>\nDay: %d/%d (target %d)\nNew records: %d\nUpdated: %d",
		title, escape(string(result.Week)), result.CurrentDay, war.BattleDays, result.DecksPossible, result.Inserted, result.Updated)
}

// FormatImportSummary renders an import status line with its counts.
func FormatImportSummary(result *war.ImportResult, status string) string {
	if result == nil {
		return escape(status)
	}
	return fmt.Sprintf("%s\n<i>%d rows, %d races skipped</i>", escape(status), result.Rows, result.Skipped)
}

// FormatFame renders fame compactly, e.g. 12.3k above a thousand.
func FormatFame(fame int) string {
	if fame >= 1000 {
		return fmt.Sprintf("%.1fk", float64(fame)/1000)
	}
	return fmt.Sprintf("%d", fame)
}

// cell truncates a name to width runes, pads it and escapes it for HTML.
func cell(name string, width int) string {
	runes := []rune(name)
	if len(runes) > width {
		runes = runes[:width]
	}
	padded := string(runes) + strings.Repeat(" ", width-len(runes))
	return escape(padded)
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

// chunker accumulates lines into messages no longer than MaxMessageLength.
type chunker struct {
	header   string
	cont     string
	current  strings.Builder
	finished []string
}

func newChunker(header, cont string) *chunker {
	c := &chunker{header: header, cont: cont}
	c.current.WriteString(header)
	return c
}

func (c *chunker) add(line string) {
	if utf8.RuneCountInString(c.current.String())+utf8.RuneCountInString(line) > MaxMessageLength {
		c.finished = append(c.finished, c.current.String())
		c.current.Reset()
		c.current.WriteString(c.cont)
	}
	c.current.WriteString(line)
}

func (c *chunker) messages() []string {
	return append(c.finished, c.current.String())
}
