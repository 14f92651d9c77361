package game

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"spylingo/internal/config"

	"gorm.io/gorm"
)

// Engine owns every live game and is the only entry point for game actions.
// All state mutation goes through the per-game locks in Store; persistence
// is write-through and tolerates a nil database connection.
type Engine struct {
	store     *Store
	db        *gorm.DB
	dict      Dictionary
	msg       Messenger
	cfg       config.Config
	clockTick time.Duration
	clocksMu  sync.Mutex
	clocks    map[string]*clockHandle
}

func NewEngine(conn *gorm.DB, cfg config.Config, dict Dictionary, msg Messenger) *Engine {
	if msg == nil {
		msg = NopMessenger()
	}
	return &Engine{
		store:     NewStore(),
		db:        conn,
		dict:      dict,
		msg:       msg,
		cfg:       cfg,
		clockTick: time.Duration(cfg.ClockTickSeconds) * time.Second,
		clocks:    make(map[string]*clockHandle),
	}
}

func (e *Engine) Store() *Store { return e.store }

// CreateGame opens a new waiting game in a chat and auto-joins the creator.
// A chat holds at most one live game at a time.
func (e *Engine) CreateGame(chatID, creatorID int64, name string) (Game, error) {
	game, ok := e.store.CreateExclusive(chatID)
	if !ok {
		return Game{}, ErrChatHasActiveGame
	}
	var snap Game
	err := e.store.With(game.ID, func(game *Game) error {
		game.Players = append(game.Players, Player{
			UserID:   creatorID,
			Name:     name,
			JoinedAt: timeNowUTC(),
		})
		snap = copyGame(game)
		return nil
	})
	if err != nil {
		return Game{}, err
	}
	if err := e.persistGame(&snap); err != nil {
		return Game{}, fmt.Errorf("persist game: %w", err)
	}
	log.Printf("game created game_id=%s chat_id=%d", snap.ID, chatID)
	return snap, nil
}

// Join adds a player to a waiting game. It reports false when the user is
// already in the game or the game has left the waiting state.
func (e *Engine) Join(gameID string, userID int64, name string) (bool, error) {
	joined := false
	var snap Game
	err := e.store.With(gameID, func(game *Game) error {
		if game.Status != StatusWaiting {
			return nil
		}
		if game.player(userID) != nil {
			return nil
		}
		game.Players = append(game.Players, Player{
			UserID:   userID,
			Name:     name,
			JoinedAt: timeNowUTC(),
		})
		joined = true
		snap = copyGame(game)
		return nil
	})
	if err != nil {
		return false, err
	}
	if joined {
		if err := e.persistPlayers(&snap); err != nil {
			return true, fmt.Errorf("persist player: %w", err)
		}
		log.Printf("player joined game_id=%s user_id=%d players=%d", gameID, userID, len(snap.Players))
	}
	return joined, nil
}

// Players returns the roster in join order. That order is authoritative for
// turn selection and ballot option indexing.
func (e *Engine) Players(gameID string) ([]Player, error) {
	snap, ok := e.store.Snapshot(gameID)
	if !ok {
		return nil, ErrGameNotFound
	}
	return snap.Players, nil
}

// Snapshot exposes a read-only copy for rendering layers.
func (e *Engine) Snapshot(gameID string) (Game, error) {
	snap, ok := e.store.Snapshot(gameID)
	if !ok {
		return Game{}, ErrGameNotFound
	}
	return snap, nil
}

// ActiveGameForChat finds the current non-finished game of a chat.
func (e *Engine) ActiveGameForChat(chatID int64) (Game, bool) {
	id, ok := e.store.ActiveForChat(chatID)
	if !ok {
		return Game{}, false
	}
	snap, err := e.Snapshot(id)
	return snap, err == nil
}

// Start launches a waiting game: it picks the location, the spy and the
// first asker uniformly, hands out vocabulary words and starts the clock.
// The returned location is for staff visibility only; players get it
// through LocationFor.
func (e *Engine) Start(gameID string, duration time.Duration) (string, error) {
	if duration <= 0 {
		duration = time.Duration(e.cfg.GameDurationSeconds) * time.Second
	}
	words, err := e.drawWords()
	if err != nil {
		return "", fmt.Errorf("draw words: %w", err)
	}
	var snap Game
	err = e.store.With(gameID, func(game *Game) error {
		if game.Status != StatusWaiting {
			return ErrInvalidState
		}
		if len(game.Players) < 3 {
			return ErrInsufficientPlayers
		}
		game.Location = Locations[rand.Intn(len(Locations))]
		spy := &game.Players[rand.Intn(len(game.Players))]
		spy.IsSpy = true
		game.AskerID = game.Players[rand.Intn(len(game.Players))].UserID
		game.TargetID = 0
		game.Status = StatusPlaying
		game.StartedAt = timeNowUTC()
		game.Duration = duration
		for _, player := range game.Players {
			game.Words[player.UserID] = words(e.cfg.WordsPerPlayer)
		}
		snap = copyGame(game)
		return nil
	})
	if err != nil {
		return "", err
	}
	if err := e.persistStart(&snap); err != nil {
		return snap.Location, fmt.Errorf("persist start: %w", err)
	}
	e.startClock(snap.ID, snap.ChatID, snap.deadline())
	e.announceStart(&snap)
	log.Printf("game started game_id=%s players=%d duration=%s", gameID, len(snap.Players), duration)
	return snap.Location, nil
}

// LocationFor reveals the location to a civilian. The spy gets the
// LocationUnknown sentinel instead.
func (e *Engine) LocationFor(gameID string, userID int64) (string, error) {
	location := ""
	err := e.store.With(gameID, func(game *Game) error {
		if game.Status != StatusPlaying {
			return ErrInvalidState
		}
		player := game.player(userID)
		if player == nil {
			return ErrInvalidTarget
		}
		if player.IsSpy {
			location = LocationUnknown
			return nil
		}
		location = game.Location
		return nil
	})
	return location, err
}

// Finish ends a game without an outcome. Finishing a finished game is a
// no-op.
func (e *Engine) Finish(gameID string) error {
	finished := false
	var snap Game
	err := e.store.With(gameID, func(game *Game) error {
		if game.Status == StatusFinished {
			return nil
		}
		game.Status = StatusFinished
		game.Votes = make(map[int64]int64)
		game.BallotID = ""
		game.Ballot = nil
		finished = true
		snap = copyGame(game)
		return nil
	})
	if err != nil {
		return err
	}
	if !finished {
		return nil
	}
	e.stopClock(gameID)
	if err := e.persistFinish(&snap); err != nil {
		return fmt.Errorf("persist finish: %w", err)
	}
	log.Printf("game finished game_id=%s", gameID)
	return nil
}

func (e *Engine) announceStart(game *Game) {
	for _, player := range game.Players {
		lines := make([]string, 0, 2+len(game.Words[player.UserID]))
		if player.IsSpy {
			lines = append(lines, "You are the SPY! You don't know the location. Guess it from the questions without revealing yourself.")
		} else {
			lines = append(lines, fmt.Sprintf("Your location: %s", game.Location))
		}
		if words := game.Words[player.UserID]; len(words) > 0 {
			lines = append(lines, "Words to slip into the conversation (bonus points for each):")
			for _, word := range words {
				lines = append(lines, fmt.Sprintf("  - %s - %s", word.Word, word.Translation))
			}
		}
		if err := e.msg.SendPrivate(player.UserID, strings.Join(lines, "\n")); err != nil {
			log.Printf("start notification failed game_id=%s user_id=%d error=%v", game.ID, player.UserID, err)
		}
	}
	asker := game.player(game.AskerID)
	askerName := ""
	if asker != nil {
		askerName = asker.Name
	}
	text := fmt.Sprintf("Game started! %d players, %d minutes on the clock.\nIt's %s's turn to ask a question.",
		len(game.Players), int(game.Duration.Minutes()), e.displayName(game.ChatID, game.AskerID, askerName))
	if err := e.msg.Broadcast(game.ChatID, text); err != nil {
		log.Printf("start broadcast failed game_id=%s error=%v", game.ID, err)
	}
}

func (e *Engine) drawWords() (func(n int) []AssignedWord, error) {
	if e.dict == nil {
		return func(int) []AssignedWord { return nil }, nil
	}
	dict := e.dict
	return func(n int) []AssignedWord {
		pairs, err := dict.RandomWords(n)
		if err != nil {
			log.Printf("dictionary draw failed error=%v", err)
			return nil
		}
		words := make([]AssignedWord, 0, len(pairs))
		for _, pair := range pairs {
			words = append(words, AssignedWord{Word: pair.Word, Translation: pair.Translation})
		}
		return words
	}, nil
}
