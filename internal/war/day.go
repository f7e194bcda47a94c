package war

import "github.com/mauv0809/riverwatch/internal/royale"

const (
	// DecksPerDay is the number of war decks a player can use on one battle day.
	DecksPerDay = 4
	// BattleDays is the number of battle days in a river race week.
	BattleDays = 4
	// FullQuota is the decks a player can use over a complete war week.
	FullQuota = DecksPerDay * BattleDays
	// DefaultHistoryLimit is how many finished races the importer asks for.
	DefaultHistoryLimit = 10
)

// InferCurrentDay estimates how many battle days have at least started.
//
// The API's closed-day count can lag behind when the period logs have not rolled over,
// so the leading player's deck usage is used as a lower bound. The result is in
// [1, BattleDays].
func InferCurrentDay(periodLogsCount, maxDecksUsed int) int {
	if periodLogsCount < 0 {
		periodLogsCount = 0
	}
	if maxDecksUsed < 0 {
		maxDecksUsed = 0
	}
	impliedDay := max(1, (maxDecksUsed+DecksPerDay-1)/DecksPerDay)
	return min(BattleDays, max(periodLogsCount+1, impliedDay))
}

// DecksPossible is the par a player is measured against on the given day.
func DecksPossible(day int) int {
	return day * DecksPerDay
}

// MaxDecksUsed returns the highest decks-used value among the participants.
func MaxDecksUsed(participants map[string]royale.Participant) int {
	highest := 0
	for _, p := range participants {
		highest = max(highest, p.DecksUsed)
	}
	return highest
}
