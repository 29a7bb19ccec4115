package model

import (
	"testing"

	"github.com/pkruger/chesslite-backend/internal/engine"
)

func wsMove(fromRow, fromCol, toRow, toCol int) WSMove {
	return WSMove{
		From: engine.Square{Row: fromRow, Col: fromCol},
		To:   engine.Square{Row: toRow, Col: toCol},
	}
}

func TestMakeMoveRejectsBadInput(t *testing.T) {
	g := NewGame("test")

	if err := g.MakeMove(wsMove(6, 4, 8, 4)); err == nil {
		t.Error("expected error for out-of-bounds destination")
	}
	if err := g.MakeMove(wsMove(4, 4, 3, 4)); err == nil {
		t.Error("expected error for empty source square")
	}
	if err := g.MakeMove(wsMove(1, 4, 3, 4)); err == nil {
		t.Error("expected error when moving Black's piece on White's turn")
	}
	if err := g.MakeMove(wsMove(6, 4, 3, 4)); err == nil {
		t.Error("expected error for an illegal pawn move")
	}

	if got := len(g.GetState().MoveHistory); got != 0 {
		t.Fatalf("rejected moves must not enter the history, got %d entries", got)
	}
}

func TestMakeMoveRecordsStateAndHistory(t *testing.T) {
	g := NewGame("test")

	if err := g.MakeMove(wsMove(6, 4, 4, 4)); err != nil { // e4
		t.Fatalf("e4 should be legal: %v", err)
	}

	state := g.GetState()
	if state.ToMove != engine.Black {
		t.Errorf("expected Black to move, got %s", state.ToMove)
	}
	if len(state.MoveHistory) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(state.MoveHistory))
	}
	if state.MoveHistory[0].WhitePly.Notation != "e4" {
		t.Errorf("expected notation e4, got %q", state.MoveHistory[0].WhitePly.Notation)
	}
	if state.Board[4][4] == nil || state.Board[6][4] != nil {
		t.Error("board snapshot should reflect the applied move")
	}
	if state.LastMove == nil || state.LastMove.To != (engine.Square{Row: 4, Col: 4}) {
		t.Error("last move should be recorded")
	}
}

func TestBotAnswersWithinTheSameMove(t *testing.T) {
	g := NewGameVsBot("test")

	if err := g.MakeMove(wsMove(6, 4, 4, 4)); err != nil { // e4
		t.Fatalf("e4 should be legal: %v", err)
	}

	state := g.GetState()
	if state.ToMove != engine.White {
		t.Fatalf("bot should have replied, but %s is to move", state.ToMove)
	}
	if len(state.MoveHistory) != 1 || state.MoveHistory[0].BlackPly == nil {
		t.Fatal("history should contain White's ply and the bot's reply")
	}
	if state.Players.Black.ID != BotPlayerID {
		t.Errorf("black seat should be the bot, got %q", state.Players.Black.ID)
	}
}

func TestFoolsMateResolvesCheckmate(t *testing.T) {
	g := NewGame("test")

	moves := []WSMove{
		wsMove(6, 5, 5, 5), // f3
		wsMove(1, 4, 3, 4), // e5
		wsMove(6, 6, 4, 6), // g4
		wsMove(0, 3, 4, 7), // Qh4#
	}
	for _, m := range moves {
		if err := g.MakeMove(m); err != nil {
			t.Fatalf("move %v should be legal: %v", m, err)
		}
	}

	state := g.GetState()
	if state.Resolve == nil || *state.Resolve != "checkmate" {
		t.Fatalf("expected checkmate, got %v", state.Resolve)
	}
	if !state.IsCheck {
		t.Error("the mated side should be flagged in check")
	}
	if err := g.MakeMove(wsMove(6, 0, 5, 0)); err == nil {
		t.Error("moves after the game is over must be rejected")
	}
}

func TestLegalDestinationsForHighlighting(t *testing.T) {
	g := NewGame("test")

	destinations := g.LegalDestinations(engine.Square{Row: 6, Col: 4})
	if len(destinations) != 2 {
		t.Fatalf("e2 pawn should have 2 destinations, got %d", len(destinations))
	}

	if got := g.LegalDestinations(engine.Square{Row: 4, Col: 4}); len(got) != 0 {
		t.Errorf("empty square should yield no destinations, got %v", got)
	}
}

func TestCaptureBookkeepingAndNotation(t *testing.T) {
	g := NewGame("test")

	moves := []WSMove{
		wsMove(6, 4, 4, 4), // e4
		wsMove(1, 3, 3, 3), // d5
		wsMove(4, 4, 3, 3), // exd5
	}
	for _, m := range moves {
		if err := g.MakeMove(m); err != nil {
			t.Fatalf("move %v should be legal: %v", m, err)
		}
	}

	state := g.GetState()
	if len(state.CapturedPieces.White) != 1 {
		t.Fatalf("white should have captured one piece, got %d", len(state.CapturedPieces.White))
	}
	if state.CapturedPieces.White[0].Kind != engine.Pawn {
		t.Errorf("captured piece should be a pawn, got %s", state.CapturedPieces.White[0].Kind)
	}
	if state.MoveHistory[1].WhitePly.Notation != "exd5" {
		t.Errorf("expected notation exd5, got %q", state.MoveHistory[1].WhitePly.Notation)
	}
}
