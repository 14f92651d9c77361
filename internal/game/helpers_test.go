package game

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"spylingo/internal/config"
)

// fakeMessenger records everything the engine sends.
type fakeMessenger struct {
	mu         sync.Mutex
	private    map[int64][]string
	broadcasts []string
	polls      []fakePoll
	names      map[int64]string
}

type fakePoll struct {
	chatID   int64
	ballotID string
	question string
	options  []string
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{
		private: make(map[int64][]string),
		names:   make(map[int64]string),
	}
}

func (m *fakeMessenger) SendPrivate(userID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.private[userID] = append(m.private[userID], text)
	return nil
}

func (m *fakeMessenger) Broadcast(chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts = append(m.broadcasts, text)
	return nil
}

func (m *fakeMessenger) OpenPoll(chatID int64, ballotID, question string, options []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls = append(m.polls, fakePoll{chatID: chatID, ballotID: ballotID, question: question, options: options})
	return nil
}

func (m *fakeMessenger) PlayerName(chatID, userID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name, ok := m.names[userID]; ok {
		return name, nil
	}
	return "", fmt.Errorf("no name for user %d", userID)
}

func (m *fakeMessenger) broadcastCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.broadcasts)
}

func (m *fakeMessenger) lastBroadcast() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.broadcasts) == 0 {
		return ""
	}
	return m.broadcasts[len(m.broadcasts)-1]
}

// stubDictionary deals deterministic word pairs.
type stubDictionary struct {
	counter int
}

func (d *stubDictionary) RandomWords(n int) ([]WordPair, error) {
	pairs := make([]WordPair, 0, n)
	for i := 0; i < n; i++ {
		d.counter++
		pairs = append(pairs, WordPair{
			Word:        fmt.Sprintf("word%d", d.counter),
			Translation: fmt.Sprintf("translation%d", d.counter),
		})
	}
	return pairs, nil
}

func testConfig() config.Config {
	cfg := config.Default()
	// Keep the background clock quiet unless a test overrides the tick.
	cfg.ClockTickSeconds = 3600
	return cfg
}

func newTestEngine(t *testing.T, msg Messenger) *Engine {
	t.Helper()
	return NewEngine(nil, testConfig(), &stubDictionary{}, msg)
}

// startedGame builds a playing game with a fixed roster, spy and asker so
// tests do not depend on the random draw. Players are 101, 102, 103, ...;
// the spy is always 101 and the first asker 102.
func startedGame(t *testing.T, e *Engine, players int) string {
	t.Helper()
	snap, err := e.CreateGame(1, 101, "Ada")
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	for i := 1; i < players; i++ {
		userID := int64(101 + i)
		joined, err := e.Join(snap.ID, userID, fmt.Sprintf("Player%d", userID))
		if err != nil || !joined {
			t.Fatalf("join user %d: joined=%v err=%v", userID, joined, err)
		}
	}
	if _, err := e.Start(snap.ID, time.Minute); err != nil {
		t.Fatalf("start game: %v", err)
	}
	err = e.store.With(snap.ID, func(game *Game) error {
		for i := range game.Players {
			game.Players[i].IsSpy = game.Players[i].UserID == 101
		}
		game.AskerID = 102
		game.TargetID = 0
		return nil
	})
	if err != nil {
		t.Fatalf("pin spy: %v", err)
	}
	return snap.ID
}
