package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/pkruger/chesslite-backend/internal/bot"
	"github.com/pkruger/chesslite-backend/internal/engine"
	"github.com/pkruger/chesslite-backend/internal/ws"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

// Game is a single game: the engine position, the derived client state,
// clocks, and the connections observing it. In a vs-bot game the
// opponent field holds the built-in random mover for Black.
type Game struct {
	ID          string
	mu          sync.Mutex
	pos         *engine.Position
	state       GameState
	connections *GameConnections
	opponent    *bot.Bot
	whiteClock  *Clock
	blackClock  *Clock
}

// GameState is the snapshot broadcast to clients after every move.
type GameState struct {
	Sound          string            `json:"sound"`
	Board          [][]*engine.Piece `json:"board"`
	ToMove         engine.Color      `json:"toMove"`
	MoveHistory    []Move            `json:"moveHistory"`
	CapturedPieces CapturedPieces    `json:"capturedPieces"`
	IsCheck        bool              `json:"isCheck"`
	Resolve        *string           `json:"resolve"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *engine.Move `json:"lastMove"`
}

// CapturedPieces lists what each side has taken.
type CapturedPieces struct {
	White []engine.Piece `json:"white"`
	Black []engine.Piece `json:"black"`
}

func NewGame(id string) *Game {
	pos := engine.NewStandardPosition()
	return &Game{
		ID:          id,
		pos:         pos,
		state:       newGameState(pos),
		connections: NewGameConnections(),
		whiteClock:  NewClock(time.Duration(600) * time.Second),
		blackClock:  NewClock(time.Duration(600) * time.Second),
	}
}

// NewGameVsBot seats the random mover as Black; the human gets White.
func NewGameVsBot(id string) *Game {
	g := NewGame(id)
	g.opponent = bot.New(engine.Black, time.Now().UnixNano())
	g.state.Players.Black = ClientPlayer{
		ID:       BotPlayerID,
		Color:    engine.Black,
		TimeLeft: 6000,
	}
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func newGameState(pos *engine.Position) GameState {
	state := GameState{
		Board:          boardRows(pos),
		ToMove:         pos.SideToMove(),
		MoveHistory:    make([]Move, 0),
		CapturedPieces: newCapturedPieces(),
	}
	state.Players.White = ClientPlayer{TimeLeft: 6000}
	state.Players.Black = ClientPlayer{TimeLeft: 6000}
	return state
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]engine.Piece, 0),
		Black: make([]engine.Piece, 0),
	}
}

// boardRows flattens the position into the row-major grid the client
// renders directly.
func boardRows(pos *engine.Position) [][]*engine.Piece {
	rows := make([][]*engine.Piece, 8)
	for row := 0; row < 8; row++ {
		rows[row] = make([]*engine.Piece, 8)
		for col := 0; col < 8; col++ {
			rows[row][col] = pos.PieceAt(engine.Square{Row: row, Col: col})
		}
	}
	return rows
}

func (g *Game) AddPlayer(playerID string) (engine.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{
			ID:       playerID,
			Color:    engine.White,
			TimeLeft: 6000,
		}
		return engine.White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{
			ID:       playerID,
			Color:    engine.Black,
			TimeLeft: 6000,
		}
		return engine.Black, nil
	}
	return "", errors.New("game is full")
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.state.Players.White.ID != "" && g.state.Players.White.ID == playerID {
		return true
	}
	if g.state.Players.Black.ID != "" && g.state.Players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// MakeMove validates and plays a client move. In a vs-bot game the bot
// answers inside the same lock, so callers observe both plies at once.
func (g *Game) MakeMove(move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return errors.New("game is over")
	}
	if !move.From.InBounds() || !move.To.InBounds() {
		return errors.New("invalid move, out of bounds")
	}
	piece := g.pos.PieceAt(move.From)
	if piece == nil {
		return errors.New("no piece at from square")
	}
	if piece.Color != g.state.ToMove {
		return errors.New("not your turn")
	}

	candidate := engine.Move{From: move.From, To: move.To}
	isLegal := false
	for _, legalMove := range g.pos.LegalMoves(piece.Color) {
		if legalMove == candidate {
			isLegal = true
			break
		}
	}
	if !isLegal {
		return errors.New("invalid move, not legal")
	}

	g.clockFor(piece.Color).Stop()

	g.executeMove(candidate)

	if g.opponent != nil && g.state.Resolve == nil && g.state.ToMove == g.opponent.Color() {
		g.botMove()
	}

	if g.state.Resolve == nil {
		g.clockFor(g.state.ToMove).Start()
	}

	// update client clock for both players
	g.state.Players.White.TimeLeft = int(g.whiteClock.GetTimeLeft().Milliseconds() / 100)
	g.state.Players.Black.TimeLeft = int(g.blackClock.GetTimeLeft().Milliseconds() / 100)

	return nil
}

// LegalDestinations returns where the piece on from may move, for
// client-side highlighting. Empty squares and opponents' pieces yield
// an empty list rather than an error.
func (g *Game) LegalDestinations(from engine.Square) []engine.Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	destinations := []engine.Square{}
	piece := g.pos.PieceAt(from)
	if piece == nil || g.state.Resolve != nil {
		return destinations
	}
	for _, m := range g.pos.LegalMoves(piece.Color) {
		if m.From == from {
			destinations = append(destinations, m.To)
		}
	}
	return destinations
}

func (g *Game) botMove() {
	m, ok := g.opponent.Select(g.pos)
	if !ok {
		return
	}
	g.executeMove(m)
}

// executeMove assumes the move is legal and the lock is held.
func (g *Game) executeMove(m engine.Move) {
	mover := g.pos.PieceAt(m.From)
	captured := g.pos.PieceAt(m.To)
	promoted := mover.Kind == engine.Pawn && m.To.Row == promotionRow(mover.Color)

	g.state.Sound = "move"
	if captured != nil {
		g.state.Sound = "capture"
	}

	ply := Ply{
		Piece:         mover,
		From:          m.From,
		To:            m.To,
		CapturedPiece: captured,
		Promoted:      promoted,
		Notation:      notation(mover, captured, m, promoted),
	}

	g.pos.Apply(m)

	if captured != nil {
		switch mover.Color {
		case engine.White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, *captured)
		case engine.Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, *captured)
		}
	}

	g.recordPly(mover.Color, ply)

	g.state.Board = boardRows(g.pos)
	g.state.ToMove = g.pos.SideToMove()
	g.state.IsCheck = g.pos.IsInCheck(g.state.ToMove)
	if len(g.pos.LegalMoves(g.state.ToMove)) == 0 {
		result := "stalemate"
		if g.state.IsCheck {
			result = "checkmate"
		}
		g.state.Resolve = &result
	}
	if g.state.IsCheck {
		g.state.Sound = "check"
	}
	lastMove := m
	g.state.LastMove = &lastMove

	go g.broadcastState()
}

func (g *Game) recordPly(color engine.Color, ply Ply) {
	if color == engine.White {
		g.state.MoveHistory = append(g.state.MoveHistory, Move{WhitePly: ply})
		return
	}
	if n := len(g.state.MoveHistory); n > 0 && g.state.MoveHistory[n-1].BlackPly == nil {
		g.state.MoveHistory[n-1].BlackPly = &ply
		return
	}
	g.state.MoveHistory = append(g.state.MoveHistory, Move{BlackPly: &ply})
}

func notation(mover *engine.Piece, captured *engine.Piece, m engine.Move, promoted bool) string {
	prefix := mover.Kind.Notation()
	capture := ""
	if captured != nil {
		capture = "x"
	}
	fileSpecifier := ""
	if mover.Kind == engine.Pawn && m.From.Col != m.To.Col {
		fileSpecifier = fmt.Sprintf("%c", 'a'+m.From.Col)
	}
	suffix := ""
	if promoted {
		suffix = "=Q"
	}
	return fmt.Sprintf("%s%s%s%s%s", prefix, fileSpecifier, capture, m.To.Notation(), suffix)
}

func promotionRow(color engine.Color) int {
	if color == engine.White {
		return 0
	}
	return 7
}

func (g *Game) clockFor(color engine.Color) *Clock {
	if color == engine.White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil // Not really an error, just rejecting duplicate connection
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	// Send initial state
	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	g.mu.Lock()
	state := g.state
	g.mu.Unlock()

	jsonGameState, err := json.Marshal(state)
	if err != nil {
		log.Printf("failed to marshal game state: %v", err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(jsonGameState),
		}); err != nil {
			log.Printf("failed to send state to player %s: %v", playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
