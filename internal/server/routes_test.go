package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordgamelab/wordgame-backend/internal"
	"github.com/wordgamelab/wordgame-backend/internal/game"
	"github.com/wordgamelab/wordgame-backend/internal/words"
)

type stubStore struct {
	entries []internal.LeaderboardEntry
	topErr  error
	dump    string
}

func (s *stubStore) Save(context.Context, internal.SessionSummary) error { return nil }

func (s *stubStore) Top(context.Context, int) ([]internal.LeaderboardEntry, error) {
	return s.entries, s.topErr
}

func (s *stubStore) DumpCSV(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, s.dump)
	return err
}

type nopGateway struct{}

func (nopGateway) GenerateDescription(context.Context, string, []string) (string, error) {
	return "", nil
}

func (nopGateway) GuessWord(context.Context, string, string, string) (string, error) {
	return "", nil
}

func newTestServer(t *testing.T, store LeaderboardStore) http.Handler {
	t.Helper()
	pool, err := words.NewPool(words.Builtin())
	require.NoError(t, err)
	cfg := game.Config{MaxRounds: 8, RoundSeconds: 60}
	return New(cfg, pool, nopGateway{}, store).RegisterRoutes()
}

func TestHealthHandler(t *testing.T) {
	handler := newTestServer(t, &stubStore{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestLeaderboardHandler(t *testing.T) {
	store := &stubStore{entries: []internal.LeaderboardEntry{
		{Username: "brad", TotalScore: 61, TotalTime: 280, SubmittedAt: time.Now()},
		{Username: "ada", TotalScore: 52, TotalTime: 310, SubmittedAt: time.Now()},
	}}
	handler := newTestServer(t, store)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var entries []internal.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "brad", entries[0].Username)
	assert.Equal(t, 61, entries[0].TotalScore)
}

func TestLeaderboardHandler_StoreFailure(t *testing.T) {
	handler := newTestServer(t, &stubStore{topErr: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLeaderboardHandler_Preflight(t *testing.T) {
	handler := newTestServer(t, &stubStore{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/leaderboard", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "OPTIONS")
}

func TestLeaderboardDumpHandler(t *testing.T) {
	store := &stubStore{dump: "avatar,username\nowl,brad\n"}
	handler := newTestServer(t, store)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard/dump", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=leaderboard_dump_")
	assert.Equal(t, "avatar,username\nowl,brad\n", rec.Body.String())
}
