package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"spylingo/internal/config"
	"spylingo/internal/game"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

type testDictionary struct {
	counter int
}

func (d *testDictionary) RandomWords(n int) ([]game.WordPair, error) {
	pairs := make([]game.WordPair, 0, n)
	for i := 0; i < n; i++ {
		d.counter++
		pairs = append(pairs, game.WordPair{
			Word:        fmt.Sprintf("word%d", d.counter),
			Translation: fmt.Sprintf("translation%d", d.counter),
		})
	}
	return pairs, nil
}

func newTestServerConfig() config.Config {
	cfg := config.Default()
	cfg.ClockTickSeconds = 3600
	return cfg
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func createGame(t *testing.T, ts *httptest.Server, chatID, userID int64, name string) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{
		"chat_id": chatID,
		"user_id": userID,
		"name":    name,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create game: status %d", resp.StatusCode)
	}
	payload := decodeBody(t, resp)
	gameID, _ := payload["game_id"].(string)
	if gameID == "" {
		t.Fatalf("create game: missing game_id in %v", payload)
	}
	return gameID
}

func joinPlayer(t *testing.T, ts *httptest.Server, gameID string, userID int64, name string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/join", map[string]any{
		"user_id": userID,
		"name":    name,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join %d: status %d", userID, resp.StatusCode)
	}
}

// pinRoles makes test outcomes deterministic: spyID becomes the only spy
// and askerID takes the first turn.
func pinRoles(t *testing.T, srv *Server, gameID string, spyID, askerID int64) {
	t.Helper()
	err := srv.engine.Store().With(gameID, func(g *game.Game) error {
		for i := range g.Players {
			g.Players[i].IsSpy = g.Players[i].UserID == spyID
		}
		g.AskerID = askerID
		g.TargetID = 0
		return nil
	})
	if err != nil {
		t.Fatalf("pin roles: %v", err)
	}
}
