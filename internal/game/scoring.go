package game

import (
	"time"

	"spylingo/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ratingDelta is the base rating movement for one player in a resolved game.
func ratingDelta(isSpy bool, outcome string) int {
	if isSpy {
		if outcome == OutcomeSpyWins {
			return 20
		}
		return -15
	}
	if outcome == OutcomeCiviliansWin {
		return 15
	}
	return -10
}

// wordBonus converts a used-word count into bonus points. Zero used words
// is a flat penalty, not scaled by the assigned count.
func wordBonus(used, bonusPerWord, penalty int) int {
	if used > 0 {
		return used * bonusPerWord
	}
	return penalty
}

// computeResults builds the per-player score sheet for a decisive outcome.
// Must be called before the votes and word state are cleared.
func (e *Engine) computeResults(game *Game, outcome string) []Result {
	results := make([]Result, 0, len(game.Players))
	for _, player := range game.Players {
		won := outcome == OutcomeCiviliansWin
		if player.IsSpy {
			won = outcome == OutcomeSpyWins
		}
		result := Result{
			UserID:        player.UserID,
			Name:          player.Name,
			IsSpy:         player.IsSpy,
			Won:           won,
			WordsAssigned: len(game.Words[player.UserID]),
			UsedWords:     game.usedWordCount(player.UserID),
		}
		result.RatingDelta = ratingDelta(player.IsSpy, outcome)
		if result.WordsAssigned > 0 {
			result.WordBonus = wordBonus(result.UsedWords, e.cfg.WordBonusPoints, e.cfg.WordPenaltyPoints)
			result.RatingDelta += result.WordBonus
		}
		results = append(results, result)
	}
	return results
}

// applyResults writes the score sheet through to player statistics. The
// upsert seeds missing rows at the baseline rating and all increments are
// SQL expressions, so concurrent resolutions touching the same user never
// lose updates.
func (e *Engine) applyResults(results []Result) error {
	if e.db == nil {
		return nil
	}
	for _, result := range results {
		seed := db.PlayerStats{
			UserID:   result.UserID,
			Username: result.Name,
			Rating:   db.BaselineRating,
		}
		if err := e.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil && !isUniqueViolation(err) {
			return err
		}
		updates := map[string]any{
			"username":     result.Name,
			"games_played": gorm.Expr("games_played + 1"),
			"rating":       gorm.Expr("rating + ?", result.RatingDelta),
			"bonus_points": gorm.Expr("bonus_points + ?", result.WordBonus),
			"updated_at":   time.Now().UTC(),
		}
		if result.Won {
			updates["games_won"] = gorm.Expr("games_won + 1")
			if result.IsSpy {
				updates["spy_wins"] = gorm.Expr("spy_wins + 1")
			} else {
				updates["civilian_wins"] = gorm.Expr("civilian_wins + 1")
			}
		} else {
			updates["games_lost"] = gorm.Expr("games_lost + 1")
			if result.IsSpy {
				updates["spy_losses"] = gorm.Expr("spy_losses + 1")
			} else {
				updates["civilian_losses"] = gorm.Expr("civilian_losses + 1")
			}
		}
		if err := e.db.Model(&db.PlayerStats{}).Where("user_id = ?", result.UserID).Updates(updates).Error; err != nil {
			return err
		}
	}
	return nil
}
