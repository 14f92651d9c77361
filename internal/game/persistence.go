package game

import (
	"encoding/json"
	"errors"

	"spylingo/internal/db"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// EventPayload is the JSONB body of a game event row.
type EventPayload struct {
	ChatID   int64  `json:"chat_id,omitempty"`
	UserID   int64  `json:"user_id,omitempty"`
	TargetID int64  `json:"target_id,omitempty"`
	Outcome  string `json:"outcome,omitempty"`
	Location string `json:"location,omitempty"`
	Word     string `json:"word,omitempty"`
	BallotID string `json:"ballot_id,omitempty"`
	Players  int    `json:"players,omitempty"`
	Duration int    `json:"duration_seconds,omitempty"`
}

func (e *Engine) persistGame(snap *Game) error {
	if e.db == nil {
		return nil
	}
	record := db.Game{
		ChatID: snap.ChatID,
		Status: snap.Status,
	}
	if err := e.db.Create(&record).Error; err != nil {
		return err
	}
	e.setGameDBID(snap.ID, record.ID)
	snap.DBID = record.ID
	if err := e.persistPlayers(snap); err != nil {
		return err
	}
	return e.persistEvent(snap.ID, "game_created", EventPayload{ChatID: snap.ChatID})
}

func (e *Engine) persistPlayers(snap *Game) error {
	if e.db == nil {
		return nil
	}
	dbID := e.gameDBID(snap.ID)
	if dbID == 0 {
		return nil
	}
	for _, player := range snap.Players {
		record := db.Player{
			GameID:   dbID,
			UserID:   player.UserID,
			Username: player.Name,
			IsSpy:    player.IsSpy,
			JoinedAt: player.JoinedAt,
		}
		if err := e.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
			if !isUniqueViolation(err) {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) persistStart(snap *Game) error {
	if e.db == nil {
		return nil
	}
	dbID := e.gameDBID(snap.ID)
	if dbID == 0 {
		return nil
	}
	startedAt := snap.StartedAt
	updates := map[string]any{
		"status":           snap.Status,
		"location":         snap.Location,
		"asker_id":         snap.AskerID,
		"started_at":       &startedAt,
		"duration_seconds": int(snap.Duration.Seconds()),
	}
	if err := e.db.Model(&db.Game{}).Where("id = ?", dbID).Updates(updates).Error; err != nil {
		return err
	}
	if spy := snap.spy(); spy != nil {
		if err := e.db.Model(&db.Player{}).
			Where("game_id = ? AND user_id = ?", dbID, spy.UserID).
			Update("is_spy", true).Error; err != nil {
			return err
		}
	}
	for userID, words := range snap.Words {
		for _, word := range words {
			record := db.PlayerWord{
				GameID:      dbID,
				UserID:      userID,
				Word:        word.Word,
				Translation: word.Translation,
			}
			if err := e.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
				if !isUniqueViolation(err) {
					return err
				}
			}
		}
	}
	return e.persistEvent(snap.ID, "game_started", EventPayload{
		Players:  len(snap.Players),
		Duration: int(snap.Duration.Seconds()),
	})
}

func (e *Engine) persistTurn(snap *Game) error {
	if e.db == nil {
		return nil
	}
	dbID := e.gameDBID(snap.ID)
	if dbID == 0 {
		return nil
	}
	updates := map[string]any{
		"asker_id":  snap.AskerID,
		"target_id": snap.TargetID,
	}
	return e.db.Model(&db.Game{}).Where("id = ?", dbID).Updates(updates).Error
}

func (e *Engine) persistBallot(snap *Game) error {
	if e.db == nil {
		return nil
	}
	dbID := e.gameDBID(snap.ID)
	if dbID == 0 {
		return nil
	}
	if err := e.db.Where("game_id = ?", dbID).Delete(&db.Vote{}).Error; err != nil {
		return err
	}
	if err := e.db.Model(&db.Game{}).Where("id = ?", dbID).Update("ballot_id", snap.BallotID).Error; err != nil {
		return err
	}
	return e.persistEvent(snap.ID, "ballot_opened", EventPayload{BallotID: snap.BallotID, Players: len(snap.Players)})
}

func (e *Engine) persistVote(gameID string, voterID, suspectID int64) error {
	if e.db == nil {
		return nil
	}
	dbID := e.gameDBID(gameID)
	if dbID == 0 {
		return nil
	}
	record := db.Vote{
		GameID:    dbID,
		VoterID:   voterID,
		SuspectID: suspectID,
	}
	return e.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "voter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"suspect_id", "updated_at"}),
	}).Create(&record).Error
}

func (e *Engine) persistResolution(gameID string, res *resolution) error {
	if e.db == nil {
		return nil
	}
	dbID := e.gameDBID(gameID)
	if dbID == 0 {
		return nil
	}
	updates := map[string]any{
		"status":    StatusFinished,
		"outcome":   res.outcome,
		"ballot_id": "",
	}
	if err := e.db.Model(&db.Game{}).Where("id = ?", dbID).Updates(updates).Error; err != nil {
		return err
	}
	if err := e.db.Where("game_id = ?", dbID).Delete(&db.Vote{}).Error; err != nil {
		return err
	}
	return e.persistEvent(gameID, "game_resolved", EventPayload{
		Outcome:  res.outcome,
		Location: res.location,
		UserID:   res.spyID,
	})
}

func (e *Engine) persistFinish(snap *Game) error {
	if e.db == nil {
		return nil
	}
	dbID := e.gameDBID(snap.ID)
	if dbID == 0 {
		return nil
	}
	updates := map[string]any{
		"status":    StatusFinished,
		"ballot_id": "",
	}
	if err := e.db.Model(&db.Game{}).Where("id = ?", dbID).Updates(updates).Error; err != nil {
		return err
	}
	if err := e.db.Where("game_id = ?", dbID).Delete(&db.Vote{}).Error; err != nil {
		return err
	}
	return e.persistEvent(snap.ID, "game_finished", EventPayload{})
}

func (e *Engine) persistWordUsed(gameID string, userID int64, word *AssignedWord) error {
	if e.db == nil {
		return nil
	}
	dbID := e.gameDBID(gameID)
	if dbID == 0 {
		return nil
	}
	err := e.db.Model(&db.PlayerWord{}).
		Where("game_id = ? AND user_id = ? AND word = ?", dbID, userID, word.Word).
		Update("used", true).Error
	if err != nil {
		return err
	}
	return e.persistEvent(gameID, "word_used", EventPayload{UserID: userID, Word: word.Word})
}

func (e *Engine) persistEvent(gameID, eventType string, payload EventPayload) error {
	if e.db == nil {
		return nil
	}
	dbID := e.gameDBID(gameID)
	if dbID == 0 {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		GameID:  dbID,
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	if payload.UserID != 0 {
		userID := payload.UserID
		event.UserID = &userID
	}
	return e.db.Create(&event).Error
}

func (e *Engine) gameDBID(gameID string) uint {
	var dbID uint
	_ = e.store.With(gameID, func(game *Game) error {
		dbID = game.DBID
		return nil
	})
	return dbID
}

func (e *Engine) setGameDBID(gameID string, dbID uint) {
	_ = e.store.With(gameID, func(game *Game) error {
		game.DBID = dbID
		return nil
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
