package game

import "time"

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

const (
	OutcomeSpyWins      = "spy_wins"
	OutcomeCiviliansWin = "civilians_win"
	OutcomeInconclusive = "inconclusive"
)

// LocationUnknown is handed to the spy in place of the real location.
const LocationUnknown = "unknown"

type Game struct {
	ID        string
	DBID      uint
	ChatID    int64
	Status    string
	Location  string
	AskerID   int64
	TargetID  int64
	BallotID  string
	Ballot    []int64
	StartedAt time.Time
	Duration  time.Duration
	Outcome   string
	Players   []Player
	Votes     map[int64]int64
	Words     map[int64][]AssignedWord
}

type Player struct {
	UserID   int64
	Name     string
	IsSpy    bool
	DBID     uint
	JoinedAt time.Time
}

type AssignedWord struct {
	Word        string
	Translation string
	Used        bool
	DBID        uint
}

// WordPair is one vocabulary entry handed out at game start.
type WordPair struct {
	Word        string
	Translation string
}

// Dictionary supplies vocabulary words for the bonus system. A nil
// dictionary means games run without assigned words.
type Dictionary interface {
	RandomWords(n int) ([]WordPair, error)
}

// BallotOption pairs a poll option index with the player it stands for.
// Option order follows roster join order and must not be reordered:
// external ballots report back option indices, not user ids.
type BallotOption struct {
	Index  int
	UserID int64
	Name   string
}

// Result is one player's share of a resolved game.
type Result struct {
	UserID        int64
	Name          string
	IsSpy         bool
	Won           bool
	RatingDelta   int
	WordBonus     int
	WordsAssigned int
	UsedWords     int
}

func (g *Game) player(userID int64) *Player {
	for i := range g.Players {
		if g.Players[i].UserID == userID {
			return &g.Players[i]
		}
	}
	return nil
}

func (g *Game) spy() *Player {
	for i := range g.Players {
		if g.Players[i].IsSpy {
			return &g.Players[i]
		}
	}
	return nil
}

func (g *Game) usedWordCount(userID int64) int {
	count := 0
	for _, word := range g.Words[userID] {
		if word.Used {
			count++
		}
	}
	return count
}

func (g *Game) deadline() time.Time {
	return g.StartedAt.Add(g.Duration)
}
