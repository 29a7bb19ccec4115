package bot

import (
	"math/rand"

	"github.com/pkruger/chesslite-backend/internal/engine"
)

// Bot picks uniformly at random among the legal moves for its color,
// preferring captures when any exist. It does no search or evaluation.
type Bot struct {
	color engine.Color
	rng   *rand.Rand
}

// New returns a bot playing color. The seed fixes the move sequence,
// which tests rely on.
func New(color engine.Color, seed int64) *Bot {
	return &Bot{
		color: color,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Color returns the side the bot plays.
func (b *Bot) Color() engine.Color {
	return b.color
}

// Select chooses a move for the bot, or reports ok=false when no legal
// move exists (checkmate or stalemate).
func (b *Bot) Select(pos *engine.Position) (engine.Move, bool) {
	legal := pos.LegalMoves(b.color)
	if len(legal) == 0 {
		return engine.Move{}, false
	}
	var captures []engine.Move
	for _, m := range legal {
		if pos.PieceAt(m.To) != nil {
			captures = append(captures, m)
		}
	}
	pool := legal
	if len(captures) > 0 {
		pool = captures
	}
	return pool[b.rng.Intn(len(pool))], true
}
