package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wordgamelab/wordgame-backend/config"
	"github.com/wordgamelab/wordgame-backend/internal/game"
	"github.com/wordgamelab/wordgame-backend/internal/leaderboard"
	"github.com/wordgamelab/wordgame-backend/internal/llm"
	"github.com/wordgamelab/wordgame-backend/internal/server"
	"github.com/wordgamelab/wordgame-backend/internal/words"
)

func initWordPool() *words.Pool {
	list := words.Builtin()
	if path := config.Envs.WordsCSV; path != "" {
		loaded, err := words.FromCSV(path)
		if err != nil {
			log.Fatalf("[main] loading word CSV: %v", err)
		}
		list = loaded
		log.Printf("[main] loaded %d words from %s", len(list), path)
	}
	pool, err := words.NewPool(list)
	if err != nil {
		log.Fatalf("[main] building word pool: %v", err)
	}
	return pool
}

func initStore(ctx context.Context) *leaderboard.Store {
	if config.Envs.DatabaseURL == "" {
		log.Fatal("[main] DATABASE_URL is required")
	}
	store, err := leaderboard.NewStore(ctx, config.Envs.DatabaseURL)
	if err != nil {
		log.Fatalf("[main] connecting leaderboard store: %v", err)
	}
	return store
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := initWordPool()
	store := initStore(ctx)
	defer store.Close()

	gateway := llm.NewClient(config.Envs.LLMBaseURL, time.Duration(config.Envs.LLMTimeoutSeconds)*time.Second)

	gameCfg := game.Config{
		MaxRounds:    config.Envs.MaxRounds,
		RoundSeconds: config.Envs.RoundSeconds,
	}

	srv := server.New(gameCfg, pool, gateway, store).HTTPServer(config.Envs.Port)

	go func() {
		log.Printf("[main] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Print("[main] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
