package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Generates a timestamped pair of empty up/down migration files under
// db/migrations for the migrate binary to pick up.
func main() {
	name := flag.String("name", "", "migration name")
	flag.Parse()

	if *name == "" {
		log.Fatal("migration name is required")
	}
	if strings.ContainsAny(*name, " ") {
		log.Fatal("migration name must not contain spaces")
	}

	version := time.Now().UTC().Format("20060102150405")
	base := fmt.Sprintf("%s_%s", version, *name)
	dir := filepath.Join("db", "migrations")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("create migrations dir: %v", err)
	}

	for _, suffix := range []string{".up.sql", ".down.sql"} {
		path := filepath.Join(dir, base+suffix)
		if err := writeNew(path, "-- "+strings.TrimPrefix(strings.TrimSuffix(suffix, ".sql"), ".")+" migration\n"); err != nil {
			log.Fatalf("create migration: %v", err)
		}
		log.Printf("created %s", path)
	}
}

func writeNew(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
