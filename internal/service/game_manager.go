package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/pkruger/chesslite-backend/internal/engine"
	"github.com/pkruger/chesslite-backend/internal/model"
)

// GameManager owns every live game plus the matchmaking queue. Paired
// players are notified over per-player channels registered by the
// matchmaking endpoint.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan model.MatchFoundEvent
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
	}

	go gm.processMatchmaking()

	return gm
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// A stale channel from a dropped long-poll gets replaced.
	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}

	gm.matchingChannels[playerID] = ch
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// The channel itself is closed by whoever registered it.
	delete(gm.matchingChannels, playerID)
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.mu.Lock()
		for gm.queue.Size() >= 2 {
			player1, player2 := gm.queue.GetNextPair()

			gameID := uuid.New().String()
			game := model.NewGame(gameID)

			p1Color, err := game.AddPlayer(player1.ID)
			if err != nil {
				log.Printf("matchmaking: adding player %s: %v", player1.ID, err)
				continue
			}
			p2Color, err := game.AddPlayer(player2.ID)
			if err != nil {
				log.Printf("matchmaking: adding player %s: %v", player2.ID, err)
				continue
			}
			gm.games[gameID] = game

			gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
			gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
		}
		gm.mu.Unlock()
	}
}

// notifyMatch sends without blocking; a player whose channel is gone or
// full simply misses the event and can poll game state instead.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Printf("matchmaking: no channel for player %s", playerID)
		return
	}
	select {
	case ch <- event:
	default:
		log.Printf("matchmaking: dropped event for player %s", playerID)
	}
}

func (gm *GameManager) CreateGame(gameID string, vsBot bool) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}

	if vsBot {
		gm.games[gameID] = model.NewGameVsBot(gameID)
	} else {
		gm.games[gameID] = model.NewGame(gameID)
	}
	return nil
}

func (gm *GameManager) getGame(gameID string) (*model.Game, error) {
	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (engine.Color, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	game, err := gm.getGame(gameID)
	if err != nil {
		return "", err
	}

	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, err := gm.getGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, move model.WSMove) error {
	gm.mu.RLock()
	game, err := gm.getGame(gameID)
	gm.mu.RUnlock()
	if err != nil {
		return err
	}

	return game.MakeMove(move)
}

func (gm *GameManager) LegalDestinations(gameID string, from engine.Square) ([]engine.Square, error) {
	gm.mu.RLock()
	game, err := gm.getGame(gameID)
	gm.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	return game.LegalDestinations(from), nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	gm.mu.RLock()
	game, err := gm.getGame(gameID)
	gm.mu.RUnlock()
	if err != nil {
		return err
	}

	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	gm.mu.RLock()
	game, err := gm.getGame(gameID)
	gm.mu.RUnlock()
	if err != nil {
		return
	}

	game.UnregisterConnection(playerID)
}
