package db

import (
	"time"

	"gorm.io/datatypes"
)

// BaselineRating seeds every new statistics row.
const BaselineRating = 1000

type Game struct {
	ID              uint   `gorm:"primaryKey"`
	ChatID          int64  `gorm:"index;not null"`
	Status          string `gorm:"size:16;not null;default:'waiting'"`
	Location        string `gorm:"size:64"`
	AskerID         int64
	TargetID        int64
	BallotID        string `gorm:"size:36;index"`
	Outcome         string `gorm:"size:16"`
	StartedAt       *time.Time
	DurationSeconds int       `gorm:"not null;default:300"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
	Players         []Player
	Votes           []Vote
	Words           []PlayerWord
	Events          []Event
}

type Player struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_players_game_user"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_players_game_user"`
	Username  string    `gorm:"size:64"`
	IsSpy     bool      `gorm:"not null;default:false"`
	JoinedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Vote struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_votes_game_voter"`
	VoterID   int64     `gorm:"not null;uniqueIndex:idx_votes_game_voter"`
	SuspectID int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PlayerStats struct {
	UserID         int64  `gorm:"primaryKey"`
	Username       string `gorm:"size:64"`
	GamesPlayed    int    `gorm:"not null;default:0"`
	GamesWon       int    `gorm:"not null;default:0"`
	GamesLost      int    `gorm:"not null;default:0"`
	SpyWins        int    `gorm:"not null;default:0"`
	SpyLosses      int    `gorm:"not null;default:0"`
	CivilianWins   int    `gorm:"not null;default:0"`
	CivilianLosses int    `gorm:"not null;default:0"`
	Rating         int    `gorm:"not null;default:1000"`
	BonusPoints    int    `gorm:"not null;default:0"`
	UpdatedAt      time.Time
}

type PlayerWord struct {
	ID          uint      `gorm:"primaryKey"`
	GameID      uint      `gorm:"index;not null;uniqueIndex:idx_player_words_game_user_word"`
	UserID      int64     `gorm:"not null;uniqueIndex:idx_player_words_game_user_word"`
	Word        string    `gorm:"size:64;not null;uniqueIndex:idx_player_words_game_user_word"`
	Translation string    `gorm:"size:128;not null"`
	Used        bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type DictionaryWord struct {
	ID          uint   `gorm:"primaryKey"`
	Word        string `gorm:"size:64;uniqueIndex;not null"`
	Translation string `gorm:"size:128;not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	GameID    uint           `gorm:"index;not null"`
	UserID    *int64         `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
