package engine

type offset struct {
	dRow, dCol int
}

var (
	rookDirs   = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]offset{}, rookDirs...), bishopDirs...)
	knightDirs = []offset{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func (s Square) plus(o offset) Square {
	return Square{Row: s.Row + o.dRow, Col: s.Col + o.dCol}
}

// IsSquareAttacked reports whether any piece of byColor has a
// capture-style reach onto sq. Attacks are pseudo-legal only, so this
// can be reused from move generation without recursing into legality.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	for _, dir := range knightDirs {
		if p.hasPiece(sq.plus(dir), byColor, Knight) {
			return true
		}
	}
	// A pawn attacks its two forward diagonals, so the attacker sits one
	// row behind sq in its own direction of travel.
	pawnRow := sq.Row - forward(byColor)
	for _, dCol := range []int{-1, 1} {
		if p.hasPiece(Square{Row: pawnRow, Col: sq.Col + dCol}, byColor, Pawn) {
			return true
		}
	}
	for _, dir := range kingDirs {
		if p.hasPiece(sq.plus(dir), byColor, King) {
			return true
		}
	}
	if p.rayHits(sq, byColor, rookDirs, Rook) {
		return true
	}
	return p.rayHits(sq, byColor, bishopDirs, Bishop)
}

func (p *Position) hasPiece(sq Square, color Color, kind PieceKind) bool {
	piece := p.PieceAt(sq)
	return piece != nil && piece.Color == color && piece.Kind == kind
}

// rayHits scans outward from sq in each dir; the first occupant of the
// attacking color with the given kind (or a queen) counts as an attack,
// any other first occupant blocks the ray.
func (p *Position) rayHits(sq Square, byColor Color, dirs []offset, slider PieceKind) bool {
	for _, dir := range dirs {
		for target := sq.plus(dir); target.InBounds(); target = target.plus(dir) {
			piece := p.grid[target.Row][target.Col]
			if piece == nil {
				continue
			}
			if piece.Color == byColor && (piece.Kind == slider || piece.Kind == Queen) {
				return true
			}
			break
		}
	}
	return false
}

// IsInCheck reports whether color's king is attacked. A missing king is
// never in check.
func (p *Position) IsInCheck(color Color) bool {
	kingSq, ok := p.KingSquare(color)
	if !ok {
		return false
	}
	return p.IsSquareAttacked(kingSq, color.Other())
}

// PseudoLegalMoves enumerates movement-pattern moves for color, square
// by square in row-major order so results are deterministic.
func (p *Position) PseudoLegalMoves(color Color) []Move {
	var moves []Move
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			piece := p.grid[row][col]
			if piece == nil || piece.Color != color {
				continue
			}
			from := Square{Row: row, Col: col}
			switch piece.Kind {
			case Pawn:
				moves = append(moves, p.pawnMoves(from, color)...)
			case Knight:
				moves = append(moves, p.stepMoves(from, color, knightDirs)...)
			case Bishop:
				moves = append(moves, p.rayMoves(from, color, bishopDirs)...)
			case Rook:
				moves = append(moves, p.rayMoves(from, color, rookDirs)...)
			case Queen:
				moves = append(moves, p.rayMoves(from, color, queenDirs)...)
			case King:
				moves = append(moves, p.kingMoves(from, color)...)
			}
		}
	}
	return moves
}

// LegalMoves filters PseudoLegalMoves by simulating each candidate on a
// clone and rejecting any that leave color's own king attacked. A pawn
// landing on the far rank is promoted on the clone first, so check is
// evaluated against the board Apply would actually produce. If the
// clone has no king for color the move is accepted; king-less positions
// are permissive, not erroneous.
func (p *Position) LegalMoves(color Color) []Move {
	var legal []Move
	for _, m := range p.PseudoLegalMoves(color) {
		clone := p.Clone()
		clone.MovePiece(m)
		piece := p.PieceAt(m.From)
		if piece != nil && piece.Kind == Pawn && m.To.Row == promotionRow(piece.Color) {
			clone.grid[m.To.Row][m.To.Col] = &Piece{Color: piece.Color, Kind: Queen}
		}
		if !clone.IsInCheck(color) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (p *Position) pawnMoves(from Square, color Color) []Move {
	var moves []Move
	oneUp := Square{Row: from.Row + forward(color), Col: from.Col}
	if oneUp.InBounds() && p.grid[oneUp.Row][oneUp.Col] == nil {
		moves = append(moves, Move{From: from, To: oneUp})
		twoUp := Square{Row: from.Row + 2*forward(color), Col: from.Col}
		if from.Row == homeRow(color) && p.grid[twoUp.Row][twoUp.Col] == nil {
			moves = append(moves, Move{From: from, To: twoUp})
		}
	}
	for _, dCol := range []int{-1, 1} {
		target := Square{Row: from.Row + forward(color), Col: from.Col + dCol}
		if !target.InBounds() {
			continue
		}
		if occupant := p.grid[target.Row][target.Col]; occupant != nil && occupant.Color != color {
			moves = append(moves, Move{From: from, To: target})
		}
	}
	return moves
}

// stepMoves handles fixed-offset movers: any in-bounds target that is
// empty or holds an enemy piece.
func (p *Position) stepMoves(from Square, color Color, dirs []offset) []Move {
	var moves []Move
	for _, dir := range dirs {
		target := from.plus(dir)
		if !target.InBounds() {
			continue
		}
		occupant := p.grid[target.Row][target.Col]
		if occupant == nil || occupant.Color != color {
			moves = append(moves, Move{From: from, To: target})
		}
	}
	return moves
}

// rayMoves accumulates empty squares along each dir until the first
// occupant, which is included only as an enemy capture.
func (p *Position) rayMoves(from Square, color Color, dirs []offset) []Move {
	var moves []Move
	for _, dir := range dirs {
		for target := from.plus(dir); target.InBounds(); target = target.plus(dir) {
			occupant := p.grid[target.Row][target.Col]
			if occupant == nil {
				moves = append(moves, Move{From: from, To: target})
				continue
			}
			if occupant.Color != color {
				moves = append(moves, Move{From: from, To: target})
			}
			break
		}
	}
	return moves
}

// kingMoves pre-filters destinations attacked by the opponent. This is
// a generation-time shortcut: the king never steps onto a covered
// square, while every other piece is vetted afterwards by LegalMoves'
// full simulation (which is what catches pins).
func (p *Position) kingMoves(from Square, color Color) []Move {
	var moves []Move
	for _, dir := range kingDirs {
		target := from.plus(dir)
		if !target.InBounds() {
			continue
		}
		occupant := p.grid[target.Row][target.Col]
		if occupant != nil && occupant.Color == color {
			continue
		}
		if p.IsSquareAttacked(target, color.Other()) {
			continue
		}
		moves = append(moves, Move{From: from, To: target})
	}
	return moves
}
