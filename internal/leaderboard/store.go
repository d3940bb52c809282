// Package leaderboard persists finished game sessions and serves the
// ranked listing.
package leaderboard

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wordgamelab/wordgame-backend/internal"
)

var ErrDatabase = errors.New("unexpected database error")

const createTableSQL = `
CREATE TABLE IF NOT EXISTS game_sessions (
	id TEXT PRIMARY KEY,
	avatar TEXT NOT NULL DEFAULT '',
	username TEXT NOT NULL,
	age TEXT NOT NULL DEFAULT '',
	gender TEXT NOT NULL DEFAULT '',
	language_skill TEXT NOT NULL DEFAULT '',
	occupation TEXT NOT NULL DEFAULT '',
	education_level TEXT NOT NULL DEFAULT '',
	total_score INTEGER NOT NULL,
	total_time INTEGER NOT NULL,
	points_per_round DOUBLE PRECISION NOT NULL,
	average_round_time DOUBLE PRECISION NOT NULL,
	successful_guesser_rounds INTEGER NOT NULL,
	successful_quizmaster_rounds INTEGER NOT NULL,
	rounds_data JSONB NOT NULL,
	submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_game_sessions_score ON game_sessions (total_score DESC, total_time ASC);`

// Store is the Postgres-backed session archive.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects and ensures the schema exists.
func NewStore(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: creating schema: %w", ErrDatabase, err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Save persists one finished session summary.
func (s *Store) Save(ctx context.Context, summary internal.SessionSummary) error {
	roundsJSON, err := json.Marshal(summary.RoundsData)
	if err != nil {
		return fmt.Errorf("encoding rounds: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO game_sessions (
			id, avatar, username, age, gender, language_skill, occupation,
			education_level, total_score, total_time, points_per_round,
			average_round_time, successful_guesser_rounds,
			successful_quizmaster_rounds, rounds_data
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		uuid.NewString(), summary.Avatar, summary.Username, summary.Age,
		summary.Gender, summary.LanguageSkill, summary.Occupation,
		summary.EducationLevel, summary.TotalScore, summary.TotalTime,
		summary.PointsPerRound, summary.AverageRoundTime,
		summary.SuccessfulGuesserRounds, summary.SuccessfulQuizmasterRounds,
		roundsJSON,
	)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return nil
}

// Top returns the highest-scoring sessions, best score first and faster
// total time breaking ties. The slice order is the ranking.
func (s *Store) Top(ctx context.Context, limit int) ([]internal.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT avatar, username, total_score, total_time, points_per_round,
		       average_round_time, successful_guesser_rounds,
		       successful_quizmaster_rounds, submitted_at
		FROM game_sessions
		ORDER BY total_score DESC, total_time ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	defer rows.Close()

	entries := make([]internal.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e internal.LeaderboardEntry
		if err := rows.Scan(&e.Avatar, &e.Username, &e.TotalScore, &e.TotalTime,
			&e.PointsPerRound, &e.AverageRoundTime, &e.SuccessfulGuesserRounds,
			&e.SuccessfulQuizmasterRounds, &e.SubmittedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return entries, nil
}

// DumpCSV streams every stored session as CSV, most recent ranking first.
func (s *Store) DumpCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.pool.Query(ctx, `
		SELECT avatar, username, age, gender, language_skill, occupation,
		       education_level, total_score, total_time, points_per_round,
		       average_round_time, successful_guesser_rounds,
		       successful_quizmaster_rounds, rounds_data, submitted_at
		FROM game_sessions
		ORDER BY total_score DESC, total_time ASC`)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	defer rows.Close()

	writer := csv.NewWriter(w)
	header := []string{
		"avatar", "username", "age", "gender", "language_skill", "occupation",
		"education_level", "total_score", "total_time", "points_per_round",
		"average_round_time", "successful_guesser_rounds",
		"successful_quizmaster_rounds", "rounds_data", "submitted_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for rows.Next() {
		var (
			avatar, username, age, gender, languageSkill, occupation, educationLevel string
			totalScore, totalTime, guesserRounds, quizmasterRounds                   int
			pointsPerRound, averageRoundTime                                         float64
			roundsData                                                               []byte
			submittedAt                                                              time.Time
		)
		if err := rows.Scan(&avatar, &username, &age, &gender, &languageSkill,
			&occupation, &educationLevel, &totalScore, &totalTime,
			&pointsPerRound, &averageRoundTime, &guesserRounds,
			&quizmasterRounds, &roundsData, &submittedAt); err != nil {
			return fmt.Errorf("%w: %w", ErrDatabase, err)
		}
		record := []string{
			avatar, username, age, gender, languageSkill, occupation,
			educationLevel,
			strconv.Itoa(totalScore), strconv.Itoa(totalTime),
			strconv.FormatFloat(pointsPerRound, 'f', -1, 64),
			strconv.FormatFloat(averageRoundTime, 'f', -1, 64),
			strconv.Itoa(guesserRounds), strconv.Itoa(quizmasterRounds),
			string(roundsData), submittedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	writer.Flush()
	return writer.Error()
}
