package telegram

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/war"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFame(t *testing.T) {
	assert.Equal(t, "999", FormatFame(999))
	assert.Equal(t, "1.0k", FormatFame(1000))
	assert.Equal(t, "12.3k", FormatFame(12345))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "Alpha    ", cell("Alpha", 9))
	assert.Equal(t, "VeryLongN", cell("VeryLongName", 9))
	assert.Equal(t, "a&lt;b   ", cell("a<b", 6), "Names are escaped after padding")
	assert.Equal(t, "ÄÖÜ", cell("ÄÖÜß", 3), "Truncation counts runes, not bytes")
}

func TestFormatWeek(t *testing.T) {
	report := &war.WeekReport{
		DecksPossible: 8,
		Rows: []war.WeekRow{
			{Name: "Alpha", Status: clan.StatusGreen, DecksUsed: 5, Fame: 1200},
			{Name: "Bravo", DecksUsed: 0, Fame: 0},
		},
	}

	msgs := FormatWeek(report)
	require.Len(t, msgs, 1)
	assert.True(t, strings.HasPrefix(msgs[0], "🏆 <b>WEEKLY PROGRESS</b>"))
	assert.Contains(t, msgs[0], "🟢| <code>Alpha     |  5/8  |  1.2k </code>\n")
	assert.Contains(t, msgs[0], "⚪️| <code>Bravo     |  0/8  |     0 </code>\n")
}

func TestFormatWeek_SplitsLongReports(t *testing.T) {
	report := &war.WeekReport{DecksPossible: 16}
	for i := 0; i < 120; i++ {
		report.Rows = append(report.Rows, war.WeekRow{Name: fmt.Sprintf("Player%03d", i), DecksUsed: 16, Fame: 3000})
	}

	msgs := FormatWeek(report)
	require.Greater(t, len(msgs), 1)
	for _, m := range msgs {
		assert.LessOrEqual(t, utf8.RuneCountInString(m), MaxMessageLength)
	}
	assert.True(t, strings.HasPrefix(msgs[1], "🏆 <b>PROGRESS (cont.)</b>"))
	total := 0
	for _, m := range msgs {
		total += strings.Count(m, "Player")
	}
	assert.Equal(t, 120, total, "No row may be lost between chunks")
}

func TestFormatToday(t *testing.T) {
	assert.Equal(t, []string{"🛡 <b>Training days.</b>\nNo river attacks are available today."}, FormatToday(&war.TodayReport{Training: true}))

	msgs := FormatToday(&war.TodayReport{Day: 5, BattleOver: true, Rows: []war.TodayRow{{Name: "Alpha", DecksToday: 2}}})
	require.Len(t, msgs, 2)
	assert.Equal(t, "🏁 <b>Battle days are over.</b>", msgs[0])
	assert.Contains(t, msgs[1], "WAR: DAY 5")
	assert.Contains(t, msgs[1], "<code>Alpha     | 2/4 </code>")
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, []string{"⚠️ Database empty. Wait for the automatic restore or use /importa."}, FormatHistory(&war.HistoryReport{}))

	msgs := FormatHistory(&war.HistoryReport{Weeks: 2, Rows: []war.HistoryRow{
		{Name: "Alphabetical", Status: clan.StatusRed, DecksUsed: 24, DecksPossible: 32, Fame: 4500, Participation: 75, Weeks: 2},
		{Name: "Bravo", DecksUsed: 16, DecksPossible: 16, Fame: 800, Participation: 100, Weeks: 1, New: true},
	}})
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "HISTORY: PAST 2 WEEKS")
	assert.Contains(t, msgs[0], "🔴| <code>Alphabet | 24/32 | 4.5k</code> 75%")
	assert.Contains(t, msgs[0], "⚪️| <code>Bravo    🆕| 16/16 |  800</code> 100%")
}

func TestFormatScanSummary(t *testing.T) {
	text := FormatScanSummary(&war.ReconcileResult{Week: "Week-20240101", CurrentDay: 2, DecksPossible: 8, Inserted: 2, Updated: 0})
	assert.Equal(t, "✅ <b>Database updated!</b>\nWeek: <code>Week-20240101</code>\nDay: 2/4 (target 8)\nNew records: 2\nUpdated: 0", text)

	dry := FormatScanSummary(&war.ReconcileResult{DryRun: true})
	assert.True(t, strings.HasPrefix(dry, "🧪"))
}
