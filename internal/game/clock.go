package game

import (
	"fmt"
	"log"
	"time"
)

type clockHandle struct {
	stop chan struct{}
	done chan struct{}
}

// startClock launches the per-game countdown. Calling it while a clock is
// already running for the game is a no-op.
func (e *Engine) startClock(gameID string, chatID int64, deadline time.Time) {
	e.clocksMu.Lock()
	if _, running := e.clocks[gameID]; running {
		e.clocksMu.Unlock()
		return
	}
	handle := &clockHandle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	e.clocks[gameID] = handle
	e.clocksMu.Unlock()
	go e.runClock(gameID, chatID, deadline, handle)
}

// stopClock cancels a game's clock and waits for its goroutine to exit, so
// no notification can land after stopClock returns. Stopping a game with no
// clock is a no-op. Never call this while holding the game's lock: the
// clock goroutine takes that lock on every tick.
func (e *Engine) stopClock(gameID string) {
	e.clocksMu.Lock()
	handle, ok := e.clocks[gameID]
	if ok {
		delete(e.clocks, gameID)
	}
	e.clocksMu.Unlock()
	if !ok {
		return
	}
	close(handle.stop)
	<-handle.done
}

// clockRunning reports whether a clock is active for the game.
func (e *Engine) clockRunning(gameID string) bool {
	e.clocksMu.Lock()
	defer e.clocksMu.Unlock()
	_, ok := e.clocks[gameID]
	return ok
}

func (e *Engine) removeClock(gameID string, handle *clockHandle) {
	e.clocksMu.Lock()
	if current, ok := e.clocks[gameID]; ok && current == handle {
		delete(e.clocks, gameID)
	}
	e.clocksMu.Unlock()
}

func (e *Engine) runClock(gameID string, chatID int64, deadline time.Time, handle *clockHandle) {
	defer close(handle.done)
	ticker := time.NewTicker(e.clockTick)
	defer ticker.Stop()
	for {
		select {
		case <-handle.stop:
			return
		case <-ticker.C:
			playing := false
			err := e.store.With(gameID, func(game *Game) error {
				playing = game.Status == StatusPlaying
				return nil
			})
			if err != nil || !playing {
				e.removeClock(gameID, handle)
				return
			}
			remaining := time.Until(deadline)
			if remaining <= 0 {
				if err := e.msg.Broadcast(chatID, "Time's up! The round has ended. Open a ballot to vote for the spy."); err != nil {
					log.Printf("clock broadcast failed game_id=%s error=%v", gameID, err)
				}
				e.removeClock(gameID, handle)
				log.Printf("round clock expired game_id=%s", gameID)
				return
			}
			minutes := int(remaining.Minutes())
			seconds := int(remaining.Seconds()) % 60
			text := fmt.Sprintf("Time remaining: %d minutes %d seconds", minutes, seconds)
			if err := e.msg.Broadcast(chatID, text); err != nil {
				log.Printf("clock broadcast failed game_id=%s error=%v", gameID, err)
			}
		}
	}
}
