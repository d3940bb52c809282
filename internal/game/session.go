package game

import (
	"errors"

	"github.com/wordgamelab/wordgame-backend/internal"
)

var ErrRoundNotFinished = errors.New("cannot fold an unfinished round")

// NewSession returns an empty accumulator for one game session.
func NewSession() *internal.GameSession {
	return &internal.GameSession{Rounds: []internal.Round{}}
}

// FoldRound appends a finished round and rolls its score and elapsed wall
// time into the session totals. Elapsed time is the configured duration
// minus what was left on the countdown, so a timed-out round contributes
// the full duration.
func FoldRound(s *internal.GameSession, r *internal.Round, configuredSeconds int) error {
	if r.State != internal.StateFinished {
		return ErrRoundNotFinished
	}
	s.Rounds = append(s.Rounds, *r)
	s.TotalScore += r.Score
	s.TotalTime += configuredSeconds - r.Timer
	return nil
}

// Summarize computes the derived per-session statistics on demand from the
// folded rounds; nothing here is stored redundantly.
func Summarize(s *internal.GameSession, p internal.Participant) internal.SessionSummary {
	summary := internal.SessionSummary{
		Participant: p,
		TotalScore:  s.TotalScore,
		TotalTime:   s.TotalTime,
		RoundsData:  s.Rounds,
	}
	if n := len(s.Rounds); n > 0 {
		summary.PointsPerRound = float64(s.TotalScore) / float64(n)
		summary.AverageRoundTime = float64(s.TotalTime) / float64(n)
	}
	for _, r := range s.Rounds {
		if r.Score <= 0 {
			continue
		}
		switch r.Role {
		case internal.RoleGuesser:
			summary.SuccessfulGuesserRounds++
		case internal.RoleQuizmaster:
			summary.SuccessfulQuizmasterRounds++
		}
	}
	return summary
}
