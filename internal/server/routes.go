package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wordgamelab/wordgame-backend/internal/game"
)

const leaderboardLimit = 20

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Apply CORS middleware
	r.Use(s.corsMiddleware)

	r.HandleFunc("/", s.HealthHandler)
	r.HandleFunc("/leaderboard", s.LeaderboardHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/leaderboard/dump", s.LeaderboardDumpHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/ws", game.HandleWebSocket(s.gameCfg, s.pool, s.gateway, s.store))

	return r
}

// CORS middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "false")

		// If it's a websocket upgrade, skip further CORS checks
		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[HealthHandler] error encoding response: %v", err)
	}
}

// LeaderboardHandler returns the ranked top sessions; the array order is
// the ranking.
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.Top(r.Context(), leaderboardLimit)
	if err != nil {
		log.Printf("[LeaderboardHandler] query failed: %v", err)
		http.Error(w, "failed to load leaderboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		log.Printf("[LeaderboardHandler] error encoding response: %v", err)
	}
}

// LeaderboardDumpHandler streams every stored session as a CSV download.
func (s *Server) LeaderboardDumpHandler(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("leaderboard_dump_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := s.store.DumpCSV(r.Context(), w); err != nil {
		log.Printf("[LeaderboardDumpHandler] dump failed: %v", err)
	}
}
