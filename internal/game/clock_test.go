package game

import (
	"strings"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

func TestClockBroadcastsRemainingTime(t *testing.T) {
	msg := newFakeMessenger()
	e := newTestEngine(t, msg)
	e.clockTick = 10 * time.Millisecond
	gameID := startedGame(t, e, 3)
	defer e.Finish(gameID)

	waitFor(t, time.Second, func() bool {
		return strings.Contains(msg.lastBroadcast(), "Time remaining:")
	})
	if !e.clockRunning(gameID) {
		t.Fatalf("clock stopped while time remained")
	}
}

func TestClockExpiryEndsTicking(t *testing.T) {
	msg := newFakeMessenger()
	e := newTestEngine(t, msg)
	e.clockTick = 10 * time.Millisecond
	gameID := startedGame(t, e, 3)
	defer e.Finish(gameID)

	// Rewind the start time so the deadline has already passed, then
	// restart the clock against the expired deadline.
	e.stopClock(gameID)
	var deadline time.Time
	err := e.store.With(gameID, func(game *Game) error {
		game.StartedAt = game.StartedAt.Add(-2 * game.Duration)
		deadline = game.deadline()
		return nil
	})
	if err != nil {
		t.Fatalf("rewind clock: %v", err)
	}
	e.startClock(gameID, 1, deadline)

	waitFor(t, time.Second, func() bool {
		return strings.Contains(msg.lastBroadcast(), "Time's up!")
	})
	waitFor(t, time.Second, func() bool {
		return !e.clockRunning(gameID)
	})
	after := msg.broadcastCount()
	time.Sleep(50 * time.Millisecond)
	if msg.broadcastCount() != after {
		t.Fatalf("clock kept broadcasting after expiry")
	}
}

func TestStopClockSilencesTicks(t *testing.T) {
	msg := newFakeMessenger()
	e := newTestEngine(t, msg)
	e.clockTick = 10 * time.Millisecond
	gameID := startedGame(t, e, 3)
	defer e.Finish(gameID)

	waitFor(t, time.Second, func() bool {
		return msg.broadcastCount() > 4
	})
	e.stopClock(gameID)
	// stopClock waits for the goroutine, so the count is final here.
	after := msg.broadcastCount()
	time.Sleep(50 * time.Millisecond)
	if msg.broadcastCount() != after {
		t.Fatalf("broadcast after stopClock returned")
	}
	// Stopping again is a no-op.
	e.stopClock(gameID)
}

func TestStopClockLeavesOtherGamesTicking(t *testing.T) {
	msg := newFakeMessenger()
	e := newTestEngine(t, msg)
	e.clockTick = 10 * time.Millisecond

	first := startedGame(t, e, 3)
	defer e.Finish(first)
	second, _ := e.CreateGame(2, 201, "Eve")
	e.Join(second.ID, 202, "Kim")
	e.Join(second.ID, 203, "Lee")
	if _, err := e.Start(second.ID, time.Minute); err != nil {
		t.Fatalf("start second game: %v", err)
	}
	defer e.Finish(second.ID)

	e.stopClock(first)
	if e.clockRunning(first) {
		t.Fatalf("first clock still running after stop")
	}
	if !e.clockRunning(second.ID) {
		t.Fatalf("stopping one clock killed another")
	}
	count := msg.broadcastCount()
	waitFor(t, time.Second, func() bool {
		return msg.broadcastCount() > count
	})
}

func TestClockStopsWhenGameFinishes(t *testing.T) {
	e := newTestEngine(t, nil)
	e.clockTick = 10 * time.Millisecond
	gameID := startedGame(t, e, 3)

	if !e.clockRunning(gameID) {
		t.Fatalf("clock not running after start")
	}
	if err := e.Finish(gameID); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if e.clockRunning(gameID) {
		t.Fatalf("clock still running after finish")
	}
}
