package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wordgamelab/wordgame-backend/internal"
	"github.com/wordgamelab/wordgame-backend/internal/game"
	"github.com/wordgamelab/wordgame-backend/internal/words"
)

// LeaderboardStore is what the HTTP layer needs from session persistence.
type LeaderboardStore interface {
	Save(ctx context.Context, summary internal.SessionSummary) error
	Top(ctx context.Context, limit int) ([]internal.LeaderboardEntry, error)
	DumpCSV(ctx context.Context, w io.Writer) error
}

// Server wires the game core, the gateway client, and the leaderboard
// store behind the HTTP API.
type Server struct {
	gameCfg game.Config
	pool    *words.Pool
	gateway game.Gateway
	store   LeaderboardStore
}

func New(gameCfg game.Config, pool *words.Pool, gateway game.Gateway, store LeaderboardStore) *Server {
	return &Server{
		gameCfg: gameCfg,
		pool:    pool,
		gateway: gateway,
		store:   store,
	}
}

// HTTPServer returns the configured http.Server for the given port.
func (s *Server) HTTPServer(port int) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // websocket sessions stay open
	}
}
