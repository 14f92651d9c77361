package server

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"spylingo/internal/db"
)

type createGameRequest struct {
	ChatID int64  `json:"chat_id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type joinRequest struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type startRequest struct {
	DurationSeconds int `json:"duration_seconds"`
}

type askRequest struct {
	AskerID  int64 `json:"asker_id"`
	TargetID int64 `json:"target_id"`
}

type answerRequest struct {
	UserID int64 `json:"user_id"`
}

type voteRequest struct {
	VoterID int64 `json:"voter_id"`
	Option  int   `json:"option"`
}

type guessRequest struct {
	UserID   int64  `json:"user_id"`
	Location string `json:"location"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil || req.ChatID == 0 || req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "chat_id, user_id and name are required")
		return
	}
	snap, err := s.engine.CreateGame(req.ChatID, req.UserID, req.Name)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"game_id": snap.ID,
		"status":  snap.Status,
		"players": len(snap.Players),
	})
}

func (s *Server) handleGameInfo(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Snapshot(r.PathValue("gameID"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	players := make([]map[string]any, 0, len(snap.Players))
	for _, player := range snap.Players {
		players = append(players, map[string]any{
			"user_id": player.UserID,
			"name":    player.Name,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id": snap.ID,
		"chat_id": snap.ChatID,
		"status":  snap.Status,
		"players": players,
	})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil || req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "user_id and name are required")
		return
	}
	joined, err := s.engine.Join(r.PathValue("gameID"), req.UserID, req.Name)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if !joined {
		writeError(w, http.StatusConflict, "already joined or game has started")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"joined": true})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	duration := time.Duration(req.DurationSeconds) * time.Second
	if _, err := s.engine.Start(r.PathValue("gameID"), duration); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"started": true})
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	location, err := s.engine.LocationFor(r.PathValue("gameID"), userID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"location": location})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.Ask(r.PathValue("gameID"), req.AskerID, req.TargetID); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"asked": true})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.Answer(r.PathValue("gameID"), req.UserID); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"answered": true})
}

func (s *Server) handleOpenBallot(w http.ResponseWriter, r *http.Request) {
	options, err := s.engine.OpenBallot(r.PathValue("gameID"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	payload := make([]map[string]any, 0, len(options))
	for _, option := range options {
		payload = append(payload, map[string]any{
			"index":   option.Index,
			"user_id": option.UserID,
			"name":    option.Name,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"options": payload})
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.CastVote(r.PathValue("gameID"), req.VoterID, req.Option); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"voted": true})
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	outcome, err := s.engine.GuessLocation(r.PathValue("gameID"), req.UserID, req.Location)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": outcome})
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Finish(r.PathValue("gameID")); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"finished": true})
}

func (s *Server) handleActiveGame(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(r.PathValue("chatID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chat id")
		return
	}
	snap, ok := s.engine.ActiveGameForChat(chatID)
	if !ok {
		writeError(w, http.StatusNotFound, "no active game")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id": snap.ID,
		"status":  snap.Status,
		"players": len(snap.Players),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "statistics storage not available")
		return
	}
	stats, err := db.GetStats(s.db, userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "no statistics yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":         stats.UserID,
		"username":        stats.Username,
		"games_played":    stats.GamesPlayed,
		"games_won":       stats.GamesWon,
		"games_lost":      stats.GamesLost,
		"spy_wins":        stats.SpyWins,
		"spy_losses":      stats.SpyLosses,
		"civilian_wins":   stats.CivilianWins,
		"civilian_losses": stats.CivilianLosses,
		"rating":          stats.Rating,
		"bonus_points":    stats.BonusPoints,
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "statistics storage not available")
		return
	}
	rows, err := db.Leaderboard(s.db, 10)
	if err != nil {
		log.Printf("leaderboard query failed error=%v", err)
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	payload := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, map[string]any{
			"user_id":      row.UserID,
			"username":     row.Username,
			"rating":       row.Rating,
			"games_won":    row.GamesWon,
			"games_played": row.GamesPlayed,
			"bonus_points": row.BonusPoints,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": payload})
}
