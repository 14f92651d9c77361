package db

import "gorm.io/gorm"

// RandomWords draws n distinct vocabulary entries from the dictionary table.
func RandomWords(conn *gorm.DB, n int) ([]DictionaryWord, error) {
	var rows []DictionaryWord
	err := conn.
		Order("RANDOM()").
		Limit(n).
		Find(&rows).Error
	return rows, err
}
