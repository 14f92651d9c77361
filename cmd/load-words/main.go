package main

import (
	"flag"
	"log"

	"spylingo/internal/config"
	"spylingo/internal/db"
	"spylingo/internal/dictionary"
)

func main() {
	filePath := flag.String("file", "slovarik.txt", "path to word list file")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	entries, err := dictionary.LoadFile(*filePath)
	if err != nil {
		log.Fatalf("failed to read word list: %v", err)
	}

	inserted := 0
	for _, entry := range entries {
		row := db.DictionaryWord{
			Word:        entry.Word,
			Translation: entry.Translation,
		}
		if err := conn.FirstOrCreate(&row, db.DictionaryWord{Word: entry.Word}).Error; err != nil {
			log.Fatalf("failed to upsert word: %v", err)
		}
		inserted++
	}

	log.Printf("loaded %d words", inserted)
}
