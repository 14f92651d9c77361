package game

import (
	"fmt"
	"log"
	"strings"
)

// WordsFor returns a player's assigned vocabulary for the game.
func (e *Engine) WordsFor(gameID string, userID int64) ([]AssignedWord, error) {
	snap, ok := e.store.Snapshot(gameID)
	if !ok {
		return nil, ErrGameNotFound
	}
	return snap.Words[userID], nil
}

// MarkWordUsed flags an assigned word as used. The signal arrives already
// classified from the messaging layer; the engine does no text matching.
// The used flag only ever moves false to true. Returns the matched word
// when this call was the first use.
func (e *Engine) MarkWordUsed(gameID string, userID int64, word string) (*AssignedWord, error) {
	var marked *AssignedWord
	err := e.store.With(gameID, func(game *Game) error {
		if game.Status != StatusPlaying {
			return ErrInvalidState
		}
		words := game.Words[userID]
		for i := range words {
			if !strings.EqualFold(words[i].Word, word) {
				continue
			}
			if words[i].Used {
				return nil
			}
			words[i].Used = true
			hit := words[i]
			marked = &hit
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if marked == nil {
		return nil, nil
	}
	if err := e.persistWordUsed(gameID, userID, marked); err != nil {
		return marked, fmt.Errorf("persist word use: %w", err)
	}
	log.Printf("word used game_id=%s user_id=%d word=%s", gameID, userID, marked.Word)
	return marked, nil
}

// CongratulateWordUse posts the first-use bonus notice to the game chat.
func (e *Engine) CongratulateWordUse(chatID int64, word AssignedWord) {
	text := fmt.Sprintf("Great! You used the word '%s'\nTranslation: %s\nYou earned %d bonus points!",
		word.Word, word.Translation, e.cfg.WordBonusPoints)
	if err := e.msg.Broadcast(chatID, text); err != nil {
		log.Printf("word notification failed chat_id=%d error=%v", chatID, err)
	}
}
