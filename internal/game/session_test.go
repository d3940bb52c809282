package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordgamelab/wordgame-backend/internal"
)

func finishedRound(number, score, timerLeft int) *internal.Round {
	r := NewRound(number, testWord(), 60)
	r.Score = score
	r.Timer = timerLeft
	r.State = internal.StateFinished
	if score > 0 {
		r.Outcome = internal.OutcomeSuccess
	} else {
		r.Outcome = internal.OutcomeFailure
	}
	return r
}

func TestFoldRound(t *testing.T) {
	s := NewSession()

	// Round won with 45s left: contributes 15 elapsed seconds.
	require.NoError(t, FoldRound(s, finishedRound(1, 8, 45), 60))
	assert.Equal(t, 8, s.TotalScore)
	assert.Equal(t, 15, s.TotalTime)

	// Round lost by timeout: contributes the full duration.
	require.NoError(t, FoldRound(s, finishedRound(2, 0, 0), 60))
	assert.Equal(t, 8, s.TotalScore)
	assert.Equal(t, 75, s.TotalTime)

	assert.Len(t, s.Rounds, 2)
}

func TestFoldRound_RejectsUnfinished(t *testing.T) {
	s := NewSession()
	r := NewRound(1, testWord(), 60)
	assert.ErrorIs(t, FoldRound(s, r, 60), ErrRoundNotFinished)
	assert.Empty(t, s.Rounds)
	assert.Zero(t, s.TotalScore)
}

func TestFoldRound_TotalScoreIsSumOfRoundScores(t *testing.T) {
	s := NewSession()
	scores := []int{10, 0, 7, 4}
	want := 0
	for i, score := range scores {
		require.NoError(t, FoldRound(s, finishedRound(i+1, score, 30), 60))
		want += score
	}
	assert.Equal(t, want, s.TotalScore)
}

func TestSummarize(t *testing.T) {
	s := NewSession()
	// Odd rounds: human guesser. Even rounds: human quizmaster.
	require.NoError(t, FoldRound(s, finishedRound(1, 10, 40), 60)) // guesser, success
	require.NoError(t, FoldRound(s, finishedRound(2, 0, 0), 60))   // quizmaster, failure
	require.NoError(t, FoldRound(s, finishedRound(3, 0, 0), 60))   // guesser, failure
	require.NoError(t, FoldRound(s, finishedRound(4, 6, 20), 60))  // quizmaster, success

	participant := internal.Participant{Username: "ada", Avatar: "owl"}
	summary := Summarize(s, participant)

	assert.Equal(t, "ada", summary.Username)
	assert.Equal(t, 16, summary.TotalScore)
	assert.Equal(t, 20+60+60+40, summary.TotalTime)
	assert.InDelta(t, 4.0, summary.PointsPerRound, 1e-9)
	assert.InDelta(t, 45.0, summary.AverageRoundTime, 1e-9)
	assert.Equal(t, 1, summary.SuccessfulGuesserRounds)
	assert.Equal(t, 1, summary.SuccessfulQuizmasterRounds)
	assert.Len(t, summary.RoundsData, 4)
}

func TestSummarize_EmptySession(t *testing.T) {
	summary := Summarize(NewSession(), internal.Participant{Username: "ada"})
	assert.Zero(t, summary.PointsPerRound)
	assert.Zero(t, summary.AverageRoundTime)
	assert.Empty(t, summary.RoundsData)
}
