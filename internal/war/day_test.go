package war

import (
	"fmt"
	"testing"

	"github.com/mauv0809/riverwatch/internal/royale"
	"github.com/stretchr/testify/assert"
)

func TestInferCurrentDay(t *testing.T) {
	t.Run("matches the closed-form formula over the whole input range", func(t *testing.T) {
		for logs := 0; logs < BattleDays; logs++ {
			for decks := 0; decks <= FullQuota; decks++ {
				implied := (decks + 3) / 4
				want := max(logs+1, implied)
				want = min(max(want, 1), 4)
				assert.Equal(t, want, InferCurrentDay(logs, decks), fmt.Sprintf("logs=%d decks=%d", logs, decks))
			}
		}
	})

	t.Run("examples", func(t *testing.T) {
		assert.Equal(t, 1, InferCurrentDay(0, 0), "No logs and no decks is day one")
		assert.Equal(t, 3, InferCurrentDay(1, 9), "Deck usage should catch a stale period log count")
		assert.Equal(t, 2, InferCurrentDay(1, 5))
		assert.Equal(t, 4, InferCurrentDay(4, 0), "Days are capped at four")
		assert.Equal(t, 4, InferCurrentDay(0, 40))
	})

	t.Run("negative inputs are treated as zero", func(t *testing.T) {
		assert.Equal(t, 1, InferCurrentDay(-3, -7))
	})
}

func TestDecksPossible(t *testing.T) {
	assert.Equal(t, 4, DecksPossible(1))
	assert.Equal(t, 8, DecksPossible(2))
	assert.Equal(t, FullQuota, DecksPossible(BattleDays))
}

func TestMaxDecksUsed(t *testing.T) {
	assert.Equal(t, 0, MaxDecksUsed(nil), "Empty participant list should yield zero")
	assert.Equal(t, 7, MaxDecksUsed(map[string]royale.Participant{
		"#A": {DecksUsed: 3},
		"#B": {DecksUsed: 7},
	}))
}
