package game

import (
	"fmt"
	"log"
)

// Ask records that the current asker posed a question to target. The asker
// keeps the turn until the target answers.
func (e *Engine) Ask(gameID string, askerID, targetID int64) error {
	var snap Game
	err := e.store.With(gameID, func(game *Game) error {
		if game.Status != StatusPlaying {
			return ErrInvalidState
		}
		if game.AskerID != askerID {
			return ErrNotYourTurn
		}
		if targetID == askerID || game.player(targetID) == nil {
			return ErrInvalidTarget
		}
		game.TargetID = targetID
		snap = copyGame(game)
		return nil
	})
	if err != nil {
		return err
	}
	if err := e.persistTurn(&snap); err != nil {
		return fmt.Errorf("persist turn: %w", err)
	}
	asker := snap.player(askerID)
	target := snap.player(targetID)
	text := fmt.Sprintf("%s is asking %s a question! %s, answer and the turn passes to you.",
		e.displayName(snap.ChatID, askerID, asker.Name),
		e.displayName(snap.ChatID, targetID, target.Name),
		e.displayName(snap.ChatID, targetID, target.Name))
	if err := e.msg.Broadcast(snap.ChatID, text); err != nil {
		log.Printf("ask broadcast failed game_id=%s error=%v", gameID, err)
	}
	return nil
}

// Answer passes the turn: the responder becomes the next asker. Answering
// carries no content; it is a turn-passing signal.
func (e *Engine) Answer(gameID string, responderID int64) error {
	var snap Game
	err := e.store.With(gameID, func(game *Game) error {
		if game.Status != StatusPlaying {
			return ErrInvalidState
		}
		if game.TargetID == 0 || game.TargetID != responderID {
			return ErrNotAddressed
		}
		game.TargetID = 0
		game.AskerID = responderID
		snap = copyGame(game)
		return nil
	})
	if err != nil {
		return err
	}
	if err := e.persistTurn(&snap); err != nil {
		return fmt.Errorf("persist turn: %w", err)
	}
	responder := snap.player(responderID)
	text := fmt.Sprintf("%s answered and now asks the next question.",
		e.displayName(snap.ChatID, responderID, responder.Name))
	if err := e.msg.Broadcast(snap.ChatID, text); err != nil {
		log.Printf("answer broadcast failed game_id=%s error=%v", gameID, err)
	}
	return nil
}

// CurrentTurn reports the asker and, when a question is pending, the target.
func (e *Engine) CurrentTurn(gameID string) (askerID, targetID int64, err error) {
	snap, ok := e.store.Snapshot(gameID)
	if !ok {
		return 0, 0, ErrGameNotFound
	}
	return snap.AskerID, snap.TargetID, nil
}
