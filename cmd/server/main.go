package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"spylingo/internal/config"
	"spylingo/internal/db"
	"spylingo/internal/dictionary"
	"spylingo/internal/game"
	"spylingo/internal/server"

	"gorm.io/gorm"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open()
	if err != nil {
		log.Printf("running without database: %v", err)
		conn = nil
	} else {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
			sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
			sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
			sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	}

	srv := server.New(conn, cfg, dictionarySource(conn, cfg))

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}
	log.Printf("spylingo server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}

// dictionarySource prefers the database word table and falls back to the
// word-list file so the server still deals vocabulary without Postgres.
func dictionarySource(conn *gorm.DB, cfg config.Config) game.Dictionary {
	if conn != nil {
		return dictionary.NewDBSource(conn)
	}
	entries, err := dictionary.LoadFile(cfg.DictionaryPath)
	if err != nil {
		log.Printf("word list %s unavailable: %v", cfg.DictionaryPath, err)
		return dictionary.NewStaticSource(nil)
	}
	log.Printf("loaded %d dictionary entries from %s", len(entries), cfg.DictionaryPath)
	return dictionary.NewStaticSource(entries)
}
