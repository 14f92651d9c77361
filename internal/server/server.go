package server

import (
	"net/http"

	"spylingo/internal/config"
	"spylingo/internal/game"

	"gorm.io/gorm"
)

type Server struct {
	engine *game.Engine
	db     *gorm.DB
	cfg    config.Config
	hub    *Hub
}

func New(conn *gorm.DB, cfg config.Config, dict game.Dictionary) *Server {
	hub := NewHub()
	return &Server{
		engine: game.NewEngine(conn, cfg, dict, hub),
		db:     conn,
		cfg:    cfg,
		hub:    hub,
	}
}

func (s *Server) Engine() *game.Engine { return s.engine }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /leaderboard", s.handleLeaderboardView)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/{gameID}", s.handleGameInfo)
	mux.HandleFunc("POST /api/games/{gameID}/join", s.handleJoin)
	mux.HandleFunc("POST /api/games/{gameID}/start", s.handleStart)
	mux.HandleFunc("GET /api/games/{gameID}/location", s.handleLocation)
	mux.HandleFunc("POST /api/games/{gameID}/ask", s.handleAsk)
	mux.HandleFunc("POST /api/games/{gameID}/answer", s.handleAnswer)
	mux.HandleFunc("POST /api/games/{gameID}/ballot", s.handleOpenBallot)
	mux.HandleFunc("POST /api/games/{gameID}/votes", s.handleCastVote)
	mux.HandleFunc("POST /api/games/{gameID}/guess", s.handleGuess)
	mux.HandleFunc("POST /api/games/{gameID}/end", s.handleEndGame)
	mux.HandleFunc("POST /api/chats/{chatID}/messages", s.handleChatMessage)
	mux.HandleFunc("GET /api/chats/{chatID}/game", s.handleActiveGame)
	mux.HandleFunc("GET /api/players/{userID}/stats", s.handleStats)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /ws/chats/{chatID}", s.handleWebsocket)
	return mux
}
