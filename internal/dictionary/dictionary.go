package dictionary

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"spylingo/internal/db"
	"spylingo/internal/game"

	"gorm.io/gorm"
)

// Entry is one line of the word list: a term and its translation.
type Entry struct {
	Word        string
	Translation string
}

// LoadFile parses a word-list file. Each non-blank line is "term
// translation" split on the first space; the term is lowercased, lines
// without a translation are skipped.
func LoadFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}
		entries = append(entries, Entry{
			Word:        strings.ToLower(strings.TrimSpace(parts[0])),
			Translation: strings.TrimSpace(parts[1]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// DBSource draws random vocabulary from the dictionary table.
type DBSource struct {
	conn *gorm.DB
}

func NewDBSource(conn *gorm.DB) *DBSource {
	return &DBSource{conn: conn}
}

func (s *DBSource) RandomWords(n int) ([]game.WordPair, error) {
	rows, err := db.RandomWords(s.conn, n)
	if err != nil {
		return nil, err
	}
	pairs := make([]game.WordPair, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, game.WordPair{Word: row.Word, Translation: row.Translation})
	}
	return pairs, nil
}

// StaticSource serves a fixed word pool, cycling when n exceeds the pool.
// Used when no database is attached. One source is shared by every game,
// so the cycle counter is guarded against concurrent draws.
type StaticSource struct {
	mu      sync.Mutex
	entries []Entry
	next    int
}

func NewStaticSource(entries []Entry) *StaticSource {
	return &StaticSource{entries: entries}
}

func (s *StaticSource) RandomWords(n int) ([]game.WordPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil, nil
	}
	pairs := make([]game.WordPair, 0, n)
	for i := 0; i < n; i++ {
		entry := s.entries[s.next%len(s.entries)]
		s.next++
		pairs = append(pairs, game.WordPair{Word: entry.Word, Translation: entry.Translation})
	}
	return pairs, nil
}
