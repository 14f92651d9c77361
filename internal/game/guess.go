package game

import (
	"fmt"
	"log"
)

// GuessLocation is the spy's all-in move: an exact match wins the game for
// the spy, anything else hands the win to the civilians. Either way the
// game finishes immediately, bypassing the ballot.
func (e *Engine) GuessLocation(gameID string, spyID int64, guessed string) (string, error) {
	var res *resolution
	err := e.store.With(gameID, func(game *Game) error {
		if game.Status != StatusPlaying {
			return ErrInvalidState
		}
		player := game.player(spyID)
		if player == nil || !player.IsSpy {
			return ErrNotSpy
		}
		outcome := OutcomeCiviliansWin
		if guessed == game.Location {
			outcome = OutcomeSpyWins
		}
		location := game.Location
		resolved := &resolution{
			outcome:  outcome,
			chatID:   game.ChatID,
			location: location,
			spyID:    player.UserID,
			spyName:  player.Name,
			players:  append([]Player(nil), game.Players...),
			results:  e.computeResults(game, outcome),
		}
		game.Status = StatusFinished
		game.Outcome = outcome
		game.Votes = make(map[int64]int64)
		game.BallotID = ""
		game.Ballot = nil
		res = resolved
		return nil
	})
	if err != nil {
		return "", err
	}
	e.stopClock(gameID)
	if err := e.persistResolution(gameID, res); err != nil {
		return res.outcome, fmt.Errorf("persist resolution: %w", err)
	}
	if err := e.applyResults(res.results); err != nil {
		return res.outcome, fmt.Errorf("apply results: %w", err)
	}
	e.sendWordSummaries(res)
	e.msg.Broadcast(res.chatID, e.guessText(res, guessed))
	log.Printf("game resolved game_id=%s outcome=%s via=guess", gameID, res.outcome)
	return res.outcome, nil
}

func (e *Engine) guessText(res *resolution, guessed string) string {
	spyName := e.displayName(res.chatID, res.spyID, res.spyName)
	verdict := "Wrong guess! Civilians win!"
	if res.outcome == OutcomeSpyWins {
		verdict = "Correct guess! The spy wins!"
	}
	return fmt.Sprintf("Spy %s decided to guess the location!\nGuess: %s\n%s\nActual location: %s",
		spyName, guessed, verdict, res.location)
}
