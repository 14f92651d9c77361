package db

import "gorm.io/gorm"

// GetStats fetches one player's lifetime statistics.
func GetStats(conn *gorm.DB, userID int64) (*PlayerStats, error) {
	var stats PlayerStats
	if err := conn.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// Leaderboard returns the top players by rating, wins as the tiebreak.
// Players who never finished a game are excluded.
func Leaderboard(conn *gorm.DB, limit int) ([]PlayerStats, error) {
	var rows []PlayerStats
	err := conn.
		Where("games_played > 0").
		Order("rating DESC, games_won DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
