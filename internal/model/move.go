package model

import "github.com/pkruger/chesslite-backend/internal/engine"

// WSMove is the move payload a client sends over the websocket.
type WSMove struct {
	From engine.Square `json:"from"`
	To   engine.Square `json:"to"`
}

// Ply is one half-move as recorded in the history.
type Ply struct {
	Piece         *engine.Piece `json:"piece"`
	From          engine.Square `json:"from"`
	To            engine.Square `json:"to"`
	CapturedPiece *engine.Piece `json:"capturedPiece"`
	Promoted      bool          `json:"promoted"`
	Notation      string        `json:"notation"`
}

// Move pairs White's ply with Black's reply.
type Move struct {
	WhitePly Ply  `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

// MatchFoundEvent tells a queued player which game they were paired
// into and which side they got.
type MatchFoundEvent struct {
	GameID string       `json:"gameId"`
	Color  engine.Color `json:"color"`
}
