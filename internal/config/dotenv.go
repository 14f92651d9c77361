package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	GameDurationSeconds      int
	WordsPerPlayer           int
	WordBonusPoints          int
	WordPenaltyPoints        int
	ClockTickSeconds         int
	DictionaryPath           string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
}

func Default() Config {
	return Config{
		GameDurationSeconds:      300,
		WordsPerPlayer:           5,
		WordBonusPoints:          5,
		WordPenaltyPoints:        -10,
		ClockTickSeconds:         60,
		DictionaryPath:           "slovarik.txt",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("GAME_DURATION_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.GameDurationSeconds = value
		}
	}
	if raw := os.Getenv("WORDS_PER_PLAYER"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.WordsPerPlayer = value
		}
	}
	if raw := os.Getenv("WORD_BONUS_POINTS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			cfg.WordBonusPoints = value
		}
	}
	if raw := os.Getenv("WORD_PENALTY_POINTS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			cfg.WordPenaltyPoints = value
		}
	}
	if raw := os.Getenv("CLOCK_TICK_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.ClockTickSeconds = value
		}
	}
	if raw := os.Getenv("DICTIONARY_PATH"); raw != "" {
		cfg.DictionaryPath = raw
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	return cfg
}
