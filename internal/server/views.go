package server

import (
	"log"
	"net/http"

	"spylingo/internal/db"
	"spylingo/internal/web"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Home().Render(r.Context(), w); err != nil {
		log.Printf("render home err=%v", err)
	}
}

func (s *Server) handleLeaderboardView(w http.ResponseWriter, r *http.Request) {
	var rows []web.LeaderboardRow
	if s.db != nil {
		stats, err := db.Leaderboard(s.db, 10)
		if err != nil {
			log.Printf("leaderboard query err=%v", err)
			writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
			return
		}
		for i, st := range stats {
			name := st.Username
			if name == "" {
				name = "Unknown"
			}
			rows = append(rows, web.LeaderboardRow{
				Rank:        i + 1,
				Name:        name,
				Rating:      st.Rating,
				GamesWon:    st.GamesWon,
				GamesPlayed: st.GamesPlayed,
				BonusPoints: st.BonusPoints,
			})
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Leaderboard(rows).Render(r.Context(), w); err != nil {
		log.Printf("render leaderboard err=%v", err)
	}
}
