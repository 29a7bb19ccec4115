package engine_test

import (
	"testing"

	"github.com/pkruger/chesslite-backend/internal/engine"
)

func TestNewStandardPosition(t *testing.T) {
	pos := engine.NewStandardPosition()

	if pos.SideToMove() != engine.White {
		t.Fatalf("expected White to move, got %s", pos.SideToMove())
	}

	backRank := []engine.PieceKind{
		engine.Rook, engine.Knight, engine.Bishop, engine.Queen,
		engine.King, engine.Bishop, engine.Knight, engine.Rook,
	}
	for col, kind := range backRank {
		black := pos.PieceAt(engine.Square{Row: 0, Col: col})
		if black == nil || black.Color != engine.Black || black.Kind != kind {
			t.Errorf("square (0,%d): expected black %s, got %v", col, kind, black)
		}
		white := pos.PieceAt(engine.Square{Row: 7, Col: col})
		if white == nil || white.Color != engine.White || white.Kind != kind {
			t.Errorf("square (7,%d): expected white %s, got %v", col, kind, white)
		}
	}
	for col := 0; col < 8; col++ {
		blackPawn := pos.PieceAt(engine.Square{Row: 1, Col: col})
		if blackPawn == nil || blackPawn.Color != engine.Black || blackPawn.Kind != engine.Pawn {
			t.Errorf("square (1,%d): expected black pawn, got %v", col, blackPawn)
		}
		whitePawn := pos.PieceAt(engine.Square{Row: 6, Col: col})
		if whitePawn == nil || whitePawn.Color != engine.White || whitePawn.Kind != engine.Pawn {
			t.Errorf("square (6,%d): expected white pawn, got %v", col, whitePawn)
		}
	}
	for row := 2; row < 6; row++ {
		for col := 0; col < 8; col++ {
			if p := pos.PieceAt(engine.Square{Row: row, Col: col}); p != nil {
				t.Errorf("square (%d,%d): expected empty, got %v", row, col, p)
			}
		}
	}
}

func TestSquareInBounds(t *testing.T) {
	cases := []struct {
		sq   engine.Square
		want bool
	}{
		{engine.Square{Row: 0, Col: 0}, true},
		{engine.Square{Row: 7, Col: 7}, true},
		{engine.Square{Row: 3, Col: 5}, true},
		{engine.Square{Row: -1, Col: 0}, false},
		{engine.Square{Row: 0, Col: -1}, false},
		{engine.Square{Row: 8, Col: 0}, false},
		{engine.Square{Row: 0, Col: 8}, false},
	}
	for _, tc := range cases {
		if got := tc.sq.InBounds(); got != tc.want {
			t.Errorf("(%d,%d).InBounds() = %v, want %v", tc.sq.Row, tc.sq.Col, got, tc.want)
		}
	}
}

func TestKingSquare(t *testing.T) {
	pos := engine.NewStandardPosition()

	whiteKing, ok := pos.KingSquare(engine.White)
	if !ok || whiteKing != (engine.Square{Row: 7, Col: 4}) {
		t.Errorf("white king: got %v ok=%v, want (7,4)", whiteKing, ok)
	}
	blackKing, ok := pos.KingSquare(engine.Black)
	if !ok || blackKing != (engine.Square{Row: 0, Col: 4}) {
		t.Errorf("black king: got %v ok=%v, want (0,4)", blackKing, ok)
	}

	empty := engine.NewPosition()
	if _, ok := empty.KingSquare(engine.White); ok {
		t.Error("empty board should have no white king")
	}
	if empty.IsInCheck(engine.White) {
		t.Error("a missing king must never be in check")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	pos := engine.NewStandardPosition()
	clone := pos.Clone()

	clone.MovePiece(engine.Move{
		From: engine.Square{Row: 6, Col: 4},
		To:   engine.Square{Row: 4, Col: 4},
	})

	if pos.PieceAt(engine.Square{Row: 6, Col: 4}) == nil {
		t.Error("moving on the clone must not clear the original's square")
	}
	if pos.PieceAt(engine.Square{Row: 4, Col: 4}) != nil {
		t.Error("moving on the clone must not populate the original's square")
	}
	if clone.PieceAt(engine.Square{Row: 4, Col: 4}) == nil {
		t.Error("the clone should hold the moved pawn")
	}
	if clone.SideToMove() != pos.SideToMove() {
		t.Error("clone must copy the side to move")
	}
}

func TestApplyAutoPromotesAndPassesTurn(t *testing.T) {
	pos := engine.NewPosition()
	pos.Place(engine.Square{Row: 7, Col: 4}, engine.Piece{Color: engine.White, Kind: engine.King})
	pos.Place(engine.Square{Row: 0, Col: 3}, engine.Piece{Color: engine.Black, Kind: engine.King})
	pos.Place(engine.Square{Row: 1, Col: 1}, engine.Piece{Color: engine.White, Kind: engine.Pawn})

	pos.Apply(engine.Move{
		From: engine.Square{Row: 1, Col: 1},
		To:   engine.Square{Row: 0, Col: 1},
	})

	promoted := pos.PieceAt(engine.Square{Row: 0, Col: 1})
	if promoted == nil || promoted.Color != engine.White || promoted.Kind != engine.Queen {
		t.Fatalf("expected white queen on (0,1), got %v", promoted)
	}
	if pos.SideToMove() != engine.Black {
		t.Errorf("expected Black to move after Apply, got %s", pos.SideToMove())
	}
	// The check on d8 only exists because the pawn became a queen.
	if !pos.IsInCheck(engine.Black) {
		t.Error("promoted queen on b8 should check the king on d8")
	}
}

func TestApplyDoesNotPromoteOffTheFarRank(t *testing.T) {
	pos := engine.NewPosition()
	pos.Place(engine.Square{Row: 3, Col: 2}, engine.Piece{Color: engine.White, Kind: engine.Pawn})

	pos.Apply(engine.Move{
		From: engine.Square{Row: 3, Col: 2},
		To:   engine.Square{Row: 2, Col: 2},
	})

	moved := pos.PieceAt(engine.Square{Row: 2, Col: 2})
	if moved == nil || moved.Kind != engine.Pawn {
		t.Fatalf("expected the pawn to stay a pawn, got %v", moved)
	}
}
