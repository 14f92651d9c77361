package game

import (
	"fmt"
	"sync"
	"time"
)

// Store keeps every live game behind its own mutex. The outer RWMutex only
// guards the index, so operations on different games never contend.
type Store struct {
	mu     sync.RWMutex
	nextID int
	games  map[string]*gameEntry
}

type gameEntry struct {
	mu   sync.Mutex
	game *Game
}

func NewStore() *Store {
	return &Store{
		nextID: 1,
		games:  make(map[string]*gameEntry),
	}
}

func (s *Store) Create(chatID int64) *Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(chatID)
}

// CreateExclusive creates a game only when the chat has no live one. The
// check and the insert share the index lock, so two concurrent creates for
// one chat cannot both succeed.
func (s *Store) CreateExclusive(chatID int64) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.games {
		entry.mu.Lock()
		live := entry.game.ChatID == chatID && entry.game.Status != StatusFinished
		entry.mu.Unlock()
		if live {
			return nil, false
		}
	}
	return s.createLocked(chatID), true
}

func (s *Store) createLocked(chatID int64) *Game {
	id := fmt.Sprintf("game-%d", s.nextID)
	s.nextID++
	game := &Game{
		ID:     id,
		ChatID: chatID,
		Status: StatusWaiting,
		Votes:  make(map[int64]int64),
		Words:  make(map[int64][]AssignedWord),
	}
	s.games[id] = &gameEntry{game: game}
	return game
}

// With runs fn with exclusive access to the named game.
func (s *Store) With(id string, fn func(game *Game) error) error {
	s.mu.RLock()
	entry, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return ErrGameNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.game)
}

// Snapshot returns a copy of the game safe to read without holding its lock.
func (s *Store) Snapshot(id string) (Game, bool) {
	var snap Game
	err := s.With(id, func(game *Game) error {
		snap = copyGame(game)
		return nil
	})
	return snap, err == nil
}

// ActiveForChat finds the newest non-finished game in a chat.
func (s *Store) ActiveForChat(chatID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bestID := ""
	bestKey := -1
	for id, entry := range s.games {
		entry.mu.Lock()
		match := entry.game.ChatID == chatID && entry.game.Status != StatusFinished
		entry.mu.Unlock()
		if match && gameSortKey(id) > bestKey {
			bestID = id
			bestKey = gameSortKey(id)
		}
	}
	return bestID, bestID != ""
}

// FindByBallot locates the game that owns a ballot session id.
func (s *Store) FindByBallot(ballotID string) (string, bool) {
	if ballotID == "" {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, entry := range s.games {
		entry.mu.Lock()
		match := entry.game.BallotID == ballotID
		entry.mu.Unlock()
		if match {
			return id, true
		}
	}
	return "", false
}

func copyGame(game *Game) Game {
	snap := *game
	snap.Players = append([]Player(nil), game.Players...)
	snap.Ballot = append([]int64(nil), game.Ballot...)
	snap.Votes = make(map[int64]int64, len(game.Votes))
	for voter, suspect := range game.Votes {
		snap.Votes[voter] = suspect
	}
	snap.Words = make(map[int64][]AssignedWord, len(game.Words))
	for userID, words := range game.Words {
		snap.Words[userID] = append([]AssignedWord(nil), words...)
	}
	return snap
}

func gameSortKey(id string) int {
	var value int
	if _, err := fmt.Sscanf(id, "game-%d", &value); err != nil {
		return 0
	}
	return value
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
