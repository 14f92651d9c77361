package game

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestStartNeedsThreePlayers(t *testing.T) {
	e := newTestEngine(t, nil)
	snap, err := e.CreateGame(1, 101, "Ada")
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	if _, err := e.Start(snap.ID, time.Minute); !errors.Is(err, ErrInsufficientPlayers) {
		t.Fatalf("expected ErrInsufficientPlayers with 1 player, got %v", err)
	}
	if _, err := e.Join(snap.ID, 102, "Ben"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := e.Start(snap.ID, time.Minute); !errors.Is(err, ErrInsufficientPlayers) {
		t.Fatalf("expected ErrInsufficientPlayers with 2 players, got %v", err)
	}
	if _, err := e.Join(snap.ID, 103, "Cat"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := e.Start(snap.ID, time.Minute); err != nil {
		t.Fatalf("start with 3 players: %v", err)
	}
	defer e.Finish(snap.ID)

	game, err := e.Snapshot(snap.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if game.Status != StatusPlaying {
		t.Fatalf("expected playing, got %s", game.Status)
	}
}

func TestStartAssignsExactlyOneSpy(t *testing.T) {
	e := newTestEngine(t, nil)
	snap, _ := e.CreateGame(1, 101, "Ada")
	e.Join(snap.ID, 102, "Ben")
	e.Join(snap.ID, 103, "Cat")
	e.Join(snap.ID, 104, "Dan")
	if _, err := e.Start(snap.ID, time.Minute); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer e.Finish(snap.ID)

	game, _ := e.Snapshot(snap.ID)
	spies := 0
	for _, player := range game.Players {
		if player.IsSpy {
			spies++
		}
	}
	if spies != 1 {
		t.Fatalf("expected exactly 1 spy, got %d", spies)
	}
	if !IsLocation(game.Location) {
		t.Fatalf("location %q not in the location list", game.Location)
	}
	if game.player(game.AskerID) == nil {
		t.Fatalf("asker %d not on the roster", game.AskerID)
	}
}

func TestStartDealsWordsToEveryPlayer(t *testing.T) {
	e := newTestEngine(t, nil)
	gameID := startedGame(t, e, 3)
	defer e.Finish(gameID)

	game, _ := e.Snapshot(gameID)
	for _, player := range game.Players {
		words := game.Words[player.UserID]
		if len(words) != e.cfg.WordsPerPlayer {
			t.Fatalf("player %d got %d words, want %d", player.UserID, len(words), e.cfg.WordsPerPlayer)
		}
		for _, word := range words {
			if word.Used {
				t.Fatalf("freshly dealt word %q already marked used", word.Word)
			}
		}
	}
}

func TestLocationForSpyAndCivilian(t *testing.T) {
	e := newTestEngine(t, nil)
	gameID := startedGame(t, e, 3)
	defer e.Finish(gameID)

	game, _ := e.Snapshot(gameID)
	spyLocation, err := e.LocationFor(gameID, 101)
	if err != nil {
		t.Fatalf("spy location: %v", err)
	}
	if spyLocation != LocationUnknown {
		t.Fatalf("spy saw %q, want %q", spyLocation, LocationUnknown)
	}
	civLocation, err := e.LocationFor(gameID, 102)
	if err != nil {
		t.Fatalf("civilian location: %v", err)
	}
	if civLocation != game.Location {
		t.Fatalf("civilian saw %q, want %q", civLocation, game.Location)
	}
	if _, err := e.LocationFor(gameID, 999); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for outsider, got %v", err)
	}
}

func TestJoinAfterStartRejected(t *testing.T) {
	e := newTestEngine(t, nil)
	gameID := startedGame(t, e, 3)
	defer e.Finish(gameID)

	joined, err := e.Join(gameID, 999, "Late")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined {
		t.Fatalf("join succeeded after start")
	}
}

func TestJoinTwiceRejected(t *testing.T) {
	e := newTestEngine(t, nil)
	snap, _ := e.CreateGame(1, 101, "Ada")
	joined, err := e.Join(snap.ID, 101, "Ada")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined {
		t.Fatalf("creator joined twice")
	}
}

func TestCreateGameExclusivePerChat(t *testing.T) {
	e := newTestEngine(t, nil)
	snap, err := e.CreateGame(1, 101, "Ada")
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := e.CreateGame(1, 102, "Ben"); !errors.Is(err, ErrChatHasActiveGame) {
		t.Fatalf("second create: expected ErrChatHasActiveGame, got %v", err)
	}
	if err := e.Finish(snap.ID); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := e.CreateGame(1, 102, "Ben"); err != nil {
		t.Fatalf("create after finish: %v", err)
	}
}

func TestConcurrentCreatesYieldOneGame(t *testing.T) {
	e := newTestEngine(t, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := e.CreateGame(7, int64(100+n), "Racer")
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			} else if !errors.Is(err, ErrChatHasActiveGame) {
				t.Errorf("create %d: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("%d creates succeeded, want 1", created)
	}
}

func TestActiveGameForChat(t *testing.T) {
	e := newTestEngine(t, nil)
	if _, ok := e.ActiveGameForChat(1); ok {
		t.Fatalf("empty engine reported an active game")
	}
	first, _ := e.CreateGame(1, 101, "Ada")
	if err := e.Finish(first.ID); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, ok := e.ActiveGameForChat(1); ok {
		t.Fatalf("finished game reported active")
	}
	second, _ := e.CreateGame(1, 101, "Ada")
	active, ok := e.ActiveGameForChat(1)
	if !ok || active.ID != second.ID {
		t.Fatalf("expected %s active, got %s ok=%v", second.ID, active.ID, ok)
	}
	if _, ok := e.ActiveGameForChat(2); ok {
		t.Fatalf("other chat reported active game")
	}
}

func TestFinishIdempotent(t *testing.T) {
	e := newTestEngine(t, nil)
	gameID := startedGame(t, e, 3)
	if err := e.Finish(gameID); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if err := e.Finish(gameID); err != nil {
		t.Fatalf("second finish: %v", err)
	}
	game, _ := e.Snapshot(gameID)
	if game.Status != StatusFinished {
		t.Fatalf("expected finished, got %s", game.Status)
	}
}

func TestStartAnnouncements(t *testing.T) {
	msg := newFakeMessenger()
	e := newTestEngine(t, msg)
	snap, _ := e.CreateGame(1, 101, "Ada")
	e.Join(snap.ID, 102, "Ben")
	e.Join(snap.ID, 103, "Cat")
	if _, err := e.Start(snap.ID, time.Minute); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer e.Finish(snap.ID)

	msg.mu.Lock()
	defer msg.mu.Unlock()
	for _, userID := range []int64{101, 102, 103} {
		if len(msg.private[userID]) == 0 {
			t.Fatalf("player %d got no start notification", userID)
		}
	}
	if len(msg.broadcasts) == 0 {
		t.Fatalf("no start broadcast")
	}
}
