package game

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/wordgamelab/wordgame-backend/internal"
)

// Round-engine errors. Every guard violation is a rejected no-op: the
// round is never left half-mutated.
var (
	ErrRoundFinished      = errors.New("round already finished")
	ErrNotWaiting         = errors.New("round is not waiting for a description")
	ErrNotPlaying         = errors.New("round is not in playing state")
	ErrDescriptionSet     = errors.New("description already set")
	ErrEmptyDescription   = errors.New("description is empty")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrBannedTerm         = errors.New("description contains the word or a banned term")
	ErrHintAlreadyUsed    = errors.New("hint already used this round")
	ErrHintUnaffordable   = errors.New("score too low to afford a hint")
	ErrUnknownHint        = errors.New("unknown hint")
)

// MaxDescriptionLength bounds quizmaster descriptions, as in the original UI.
const MaxDescriptionLength = 100

// NewRound creates a fresh round over the given word. Odd rounds put the
// human in the guesser seat, even rounds in the quizmaster seat.
func NewRound(number int, word internal.Word, timerSeconds int) *internal.Round {
	role := internal.RoleGuesser
	if number%2 == 0 {
		role = internal.RoleQuizmaster
	}
	return &internal.Round{
		Number:    number,
		State:     internal.StateWaiting,
		Timer:     timerSeconds,
		Role:      role,
		Word:      &word,
		History:   []string{},
		UsedHints: []internal.Hint{},
		Score:     internal.InitialRoundScore,
	}
}

// SetDescription moves the round from waiting to playing. Allowed exactly
// once; this is the moment the description becomes visible to the guesser.
func SetDescription(r *internal.Round, text string) error {
	if r.State == internal.StateFinished {
		return ErrRoundFinished
	}
	if r.State != internal.StateWaiting {
		return ErrNotWaiting
	}
	if r.Description != "" {
		return ErrDescriptionSet
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyDescription
	}
	r.Description = text
	r.State = internal.StatePlaying
	return nil
}

// AttemptGuess records one guess attempt. A match finishes the round with
// outcome success and the score stands as already paid down. A miss costs
// one point; hitting zero through a miss finishes the round as a failure.
func AttemptGuess(r *internal.Round, guess string) (bool, error) {
	if r.State == internal.StateFinished {
		return false, ErrRoundFinished
	}
	if r.State != internal.StatePlaying {
		return false, ErrNotPlaying
	}

	// History keeps the attempt as made; normalization is for the
	// comparison only.
	r.History = append(r.History, strings.TrimSpace(guess))

	if NormalizeGuess(guess) == strings.ToLower(r.Word.Text) {
		r.State = internal.StateFinished
		r.Outcome = internal.OutcomeSuccess
		return true, nil
	}

	if r.Score-internal.WrongGuessPenalty <= 0 {
		r.Score = 0
		r.State = internal.StateFinished
		r.Outcome = internal.OutcomeFailure
	} else {
		r.Score -= internal.WrongGuessPenalty
	}
	return false, nil
}

// UseHint spends one of the three fixed hints. Each is usable once per
// round and only while the score can afford it. A hint never finishes the
// round, even if it would leave the score at zero; the round only ends on
// the next failing event.
func UseHint(r *internal.Round, h internal.Hint) error {
	if r.State == internal.StateFinished {
		return ErrRoundFinished
	}
	switch h {
	case internal.HintStartingLetter, internal.HintWordLength, internal.HintBannedWord:
	default:
		return ErrUnknownHint
	}
	if slices.Contains(r.UsedHints, h) {
		return ErrHintAlreadyUsed
	}
	if r.Score <= internal.HintCost {
		return ErrHintUnaffordable
	}
	r.Score = max(0, r.Score-internal.HintCost)
	r.UsedHints = append(r.UsedHints, h)
	return nil
}

// Tick advances the countdown by one second. Reaching zero forces the
// round to finish as a failure with score zero, regardless of the current
// score. Returns true when this tick expired the round.
func Tick(r *internal.Round) bool {
	if r.State == internal.StateFinished {
		return false
	}
	r.Timer = max(0, r.Timer-1)
	if r.Timer == 0 {
		r.Score = 0
		r.State = internal.StateFinished
		r.Outcome = internal.OutcomeFailure
		return true
	}
	return false
}

// TimerRuns reports whether the countdown is live for the current state:
// always during playing, and during waiting only while the human
// quizmaster is composing a description.
func TimerRuns(r *internal.Round) bool {
	switch r.State {
	case internal.StatePlaying:
		return true
	case internal.StateWaiting:
		return r.Role == internal.RoleQuizmaster
	default:
		return false
	}
}

// ForceFinish marks the round terminal without touching score or history.
// Used when the session is abandoned externally.
func ForceFinish(r *internal.Round) {
	if r.State == internal.StateFinished {
		return
	}
	r.State = internal.StateFinished
	if r.Outcome == "" {
		r.Outcome = internal.OutcomeFailure
	}
}

// NormalizeGuess lowercases and trims a guess attempt for comparison.
func NormalizeGuess(guess string) string {
	return strings.ToLower(strings.TrimSpace(guess))
}

// ValidateDescription rejects a human-authored description before it
// reaches the round engine: it must be non-empty, at most
// MaxDescriptionLength characters, and free of the secret word and every
// banned term (whole-word, case-insensitive).
func ValidateDescription(w *internal.Word, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyDescription
	}
	if len([]rune(text)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	for _, term := range append([]string{w.Text}, w.BannedTerms...) {
		if containsTerm(text, term) {
			return ErrBannedTerm
		}
	}
	return nil
}

func containsTerm(text, term string) bool {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	return re.MatchString(text)
}
