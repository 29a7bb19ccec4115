package engine

import "fmt"

const boardSize = 8

// Square addresses a board cell. Row 0 is the top rank (Black's back
// rank at setup), row 7 the bottom (White's back rank).
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the square lies on the board.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < boardSize && s.Col >= 0 && s.Col < boardSize
}

// Notation returns the square in algebraic form, e.g. "e4".
func (s Square) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, boardSize-s.Row)
}

// Move is a from/to pair. Promotion carries no tag; it is inferred at
// application time from the moving piece and destination rank.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Position is an 8x8 grid of optional pieces plus the side to move.
// It is the only state the engine keeps; check, checkmate and
// stalemate are derived, never stored.
type Position struct {
	grid   [boardSize][boardSize]*Piece
	toMove Color
}

// NewPosition returns an empty board with White to move.
func NewPosition() *Position {
	return &Position{toMove: White}
}

// NewStandardPosition returns the standard start-of-game setup.
func NewStandardPosition() *Position {
	p := NewPosition()
	back := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, kind := range back {
		p.grid[0][col] = &Piece{Color: Black, Kind: kind}
		p.grid[1][col] = &Piece{Color: Black, Kind: Pawn}
		p.grid[7][col] = &Piece{Color: White, Kind: kind}
		p.grid[6][col] = &Piece{Color: White, Kind: Pawn}
	}
	return p
}

// SideToMove returns whose turn it is.
func (p *Position) SideToMove() Color {
	return p.toMove
}

// SetSideToMove overrides the side to move, for constructed positions.
func (p *Position) SetSideToMove(c Color) {
	p.toMove = c
}

// PieceAt returns the piece on sq, or nil if empty or out of bounds.
func (p *Position) PieceAt(sq Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return p.grid[sq.Row][sq.Col]
}

// Place puts a piece on sq, replacing any occupant. Squares out of
// bounds are ignored.
func (p *Position) Place(sq Square, piece Piece) {
	if !sq.InBounds() {
		return
	}
	p.grid[sq.Row][sq.Col] = &piece
}

// Clear empties sq.
func (p *Position) Clear(sq Square) {
	if !sq.InBounds() {
		return
	}
	p.grid[sq.Row][sq.Col] = nil
}

// KingSquare scans for color's king. The second return is false when
// no king is on the board; that is a valid transient state (legality
// simulation relies on it) and never an error.
func (p *Position) KingSquare(color Color) (Square, bool) {
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			piece := p.grid[row][col]
			if piece != nil && piece.Color == color && piece.Kind == King {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// Clone returns a deep copy sharing no state with p. Every hypothetical
// mutation must go through a clone so the position under test is never
// corrupted.
func (p *Position) Clone() *Position {
	c := &Position{toMove: p.toMove}
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			if piece := p.grid[row][col]; piece != nil {
				cp := *piece
				c.grid[row][col] = &cp
			}
		}
	}
	return c
}

// MovePiece relocates the piece on m.From to m.To, clearing the source
// and overwriting any occupant. No legality check, no promotion; the
// caller owns both.
func (p *Position) MovePiece(m Move) {
	p.grid[m.To.Row][m.To.Col] = p.grid[m.From.Row][m.From.Col]
	p.grid[m.From.Row][m.From.Col] = nil
}

// Apply plays m as a real game move: the piece is relocated, a pawn
// reaching the far rank becomes a queen, and the turn passes.
func (p *Position) Apply(m Move) {
	piece := p.PieceAt(m.From)
	p.MovePiece(m)
	if piece != nil && piece.Kind == Pawn && m.To.Row == promotionRow(piece.Color) {
		p.grid[m.To.Row][m.To.Col] = &Piece{Color: piece.Color, Kind: Queen}
	}
	p.toMove = p.toMove.Other()
}

// forward is the row delta a pawn of color advances by.
func forward(color Color) int {
	if color == White {
		return -1
	}
	return 1
}

// homeRow is the rank pawns of color start on.
func homeRow(color Color) int {
	if color == White {
		return 6
	}
	return 1
}

// promotionRow is the far rank where pawns of color promote.
func promotionRow(color Color) int {
	if color == White {
		return 0
	}
	return boardSize - 1
}
