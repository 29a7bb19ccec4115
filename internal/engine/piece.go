package engine

// Color identifies a side. There are exactly two.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceKind is the closed set of piece types.
type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"
)

// Notation returns the algebraic letter for the kind; pawns have none.
func (k PieceKind) Notation() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is an immutable color/kind pair. Board squares hold pointers to
// Piece values; the values themselves are never mutated in place.
type Piece struct {
	Color Color     `json:"color"`
	Kind  PieceKind `json:"type"`
}
