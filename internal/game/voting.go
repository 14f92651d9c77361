package game

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

// OpenBallot snapshots the roster into an ordered option list and opens one
// voting session. Option index i maps to the player at join-order index i;
// external poll systems report back indices, so the mapping is frozen here.
func (e *Engine) OpenBallot(gameID string) ([]BallotOption, error) {
	var snap Game
	var options []BallotOption
	err := e.store.With(gameID, func(game *Game) error {
		if game.Status != StatusPlaying {
			return ErrInvalidState
		}
		if game.BallotID != "" {
			return ErrBallotAlreadyOpen
		}
		if len(game.Players) < 2 {
			return ErrTooFewPlayers
		}
		game.Votes = make(map[int64]int64)
		game.BallotID = uuid.NewString()
		game.Ballot = game.Ballot[:0]
		for _, player := range game.Players {
			game.Ballot = append(game.Ballot, player.UserID)
		}
		snap = copyGame(game)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Voting pauses the round clock.
	e.stopClock(gameID)
	if err := e.persistBallot(&snap); err != nil {
		return nil, fmt.Errorf("persist ballot: %w", err)
	}
	names := make([]string, 0, len(snap.Ballot))
	options = make([]BallotOption, 0, len(snap.Ballot))
	for i, userID := range snap.Ballot {
		name := e.displayName(snap.ChatID, userID, snap.player(userID).Name)
		names = append(names, name)
		options = append(options, BallotOption{Index: i, UserID: userID, Name: name})
	}
	if err := e.msg.OpenPoll(snap.ChatID, snap.BallotID, "Who is the spy?", names); err != nil {
		log.Printf("open poll failed game_id=%s error=%v", gameID, err)
	}
	log.Printf("ballot opened game_id=%s ballot_id=%s options=%d", gameID, snap.BallotID, len(options))
	return options, nil
}

// GameForBallot maps a ballot session id back to its game.
func (e *Engine) GameForBallot(ballotID string) (string, bool) {
	return e.store.FindByBallot(ballotID)
}

// CastVote records one vote by option index. Casting again overwrites the
// voter's previous vote. The completion check runs in the same critical
// section as the insert, so only the true final vote triggers resolution.
func (e *Engine) CastVote(gameID string, voterID int64, optionIndex int) error {
	var res *resolution
	var suspectID int64
	err := e.store.With(gameID, func(game *Game) error {
		if game.Status != StatusPlaying || game.BallotID == "" {
			return ErrInvalidState
		}
		if optionIndex < 0 || optionIndex >= len(game.Ballot) {
			return ErrInvalidOption
		}
		if game.player(voterID) == nil {
			return ErrInvalidTarget
		}
		suspectID = game.Ballot[optionIndex]
		game.Votes[voterID] = suspectID
		if len(game.Votes) >= len(game.Players) {
			resolved, err := e.resolveLocked(game)
			if err != nil {
				return err
			}
			res = resolved
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := e.persistVote(gameID, voterID, suspectID); err != nil {
		return fmt.Errorf("persist vote: %w", err)
	}
	log.Printf("vote cast game_id=%s voter_id=%d option=%d", gameID, voterID, optionIndex)
	if res != nil {
		e.concludeResolution(gameID, res)
	}
	return nil
}

// Resolve forces resolution with the votes collected so far. It is a no-op
// on an already finished game and fails when no ballot is in flight.
func (e *Engine) Resolve(gameID string) (string, error) {
	var res *resolution
	outcome := ""
	err := e.store.With(gameID, func(game *Game) error {
		if game.Status == StatusFinished {
			outcome = game.Outcome
			return nil
		}
		if game.Status != StatusPlaying || game.BallotID == "" || len(game.Votes) == 0 {
			return ErrInvalidState
		}
		resolved, err := e.resolveLocked(game)
		if err != nil {
			return err
		}
		res = resolved
		outcome = resolved.outcome
		return nil
	})
	if err != nil {
		return "", err
	}
	if res != nil {
		e.concludeResolution(gameID, res)
	}
	return outcome, nil
}

// resolution carries everything needed to finish bookkeeping once the
// per-game lock has been released.
type resolution struct {
	outcome  string
	chatID   int64
	location string
	spyID    int64
	spyName  string
	tally    map[int64]int
	players  []Player
	results  []Result
}

// resolveLocked tallies the ballot and moves the game to finished. It must
// run under the game lock; the status transition here is the at-most-once
// gate for scoring.
func (e *Engine) resolveLocked(game *Game) (*resolution, error) {
	if len(game.Players) == 0 {
		return nil, fmt.Errorf("resolving game %s with empty roster", game.ID)
	}
	tally := make(map[int64]int)
	for _, suspect := range game.Votes {
		tally[suspect]++
	}
	maxVotes := 0
	for _, count := range tally {
		if count > maxVotes {
			maxVotes = count
		}
	}
	topSuspects := make([]int64, 0, 1)
	for suspect, count := range tally {
		if count == maxVotes {
			topSuspects = append(topSuspects, suspect)
		}
	}
	spy := game.spy()
	outcome := OutcomeInconclusive
	if len(topSuspects) == 1 && spy != nil {
		if topSuspects[0] == spy.UserID {
			outcome = OutcomeCiviliansWin
		} else {
			outcome = OutcomeSpyWins
		}
	}
	res := &resolution{
		outcome:  outcome,
		chatID:   game.ChatID,
		location: game.Location,
		tally:    tally,
		players:  append([]Player(nil), game.Players...),
	}
	if spy != nil {
		res.spyID = spy.UserID
		res.spyName = spy.Name
	}
	if outcome != OutcomeInconclusive {
		res.results = e.computeResults(game, outcome)
	}
	game.Status = StatusFinished
	game.Outcome = outcome
	game.Votes = make(map[int64]int64)
	game.BallotID = ""
	game.Ballot = nil
	return res, nil
}

// concludeResolution runs the side effects of a finished game outside the
// game lock: clock teardown, persistence, scoring and chat messages.
func (e *Engine) concludeResolution(gameID string, res *resolution) {
	e.stopClock(gameID)
	if err := e.persistResolution(gameID, res); err != nil {
		log.Printf("persist resolution failed game_id=%s error=%v", gameID, err)
	}
	if res.outcome != OutcomeInconclusive {
		if err := e.applyResults(res.results); err != nil {
			log.Printf("apply results failed game_id=%s error=%v", gameID, err)
		}
		e.sendWordSummaries(res)
	}
	e.msg.Broadcast(res.chatID, e.resolutionText(res))
	log.Printf("game resolved game_id=%s outcome=%s", gameID, res.outcome)
}

func (e *Engine) resolutionText(res *resolution) string {
	var b strings.Builder
	b.WriteString("Voting results:\n")
	for _, player := range res.players {
		name := e.displayName(res.chatID, player.UserID, player.Name)
		fmt.Fprintf(&b, "%s: %d votes\n", name, res.tally[player.UserID])
	}
	spyName := e.displayName(res.chatID, res.spyID, res.spyName)
	switch res.outcome {
	case OutcomeCiviliansWin:
		fmt.Fprintf(&b, "\nVictory! Spy found: %s\n", spyName)
	case OutcomeSpyWins:
		fmt.Fprintf(&b, "\nSpy not found! The real spy was %s\n", spyName)
	default:
		fmt.Fprintf(&b, "\nTie! Multiple suspects. The real spy was %s\n", spyName)
	}
	fmt.Fprintf(&b, "The location was: %s", res.location)
	return b.String()
}

func (e *Engine) sendWordSummaries(res *resolution) {
	for _, result := range res.results {
		// Nothing assigned, nothing to report on.
		if result.WordsAssigned == 0 {
			continue
		}
		var text string
		if result.UsedWords > 0 {
			text = fmt.Sprintf("Word usage summary:\nWords used: %d/%d\nBonus points earned: +%d",
				result.UsedWords, result.WordsAssigned, result.WordBonus)
		} else {
			text = fmt.Sprintf("Word usage summary:\nWords used: 0/%d\nPenalty: %d points",
				result.WordsAssigned, result.WordBonus)
		}
		if err := e.msg.SendPrivate(result.UserID, text); err != nil {
			log.Printf("word summary failed user_id=%d error=%v", result.UserID, err)
		}
	}
}
