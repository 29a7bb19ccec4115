package model

import "github.com/pkruger/chesslite-backend/internal/engine"

// BotPlayerID marks the built-in opponent's seat in a vs-bot game.
const BotPlayerID = "bot"

type Player struct {
	ID       string
	Color    engine.Color
	TimeLeft int
}

// ClientPlayer is the player view sent to clients.
type ClientPlayer struct {
	ID       string       `json:"name"`
	Color    engine.Color `json:"color"`
	TimeLeft int          `json:"timeLeft"`
}
