package internal

import "time"

const (
	// InitialRoundScore is the score budget every round starts with.
	InitialRoundScore = 10
	// WrongGuessPenalty is subtracted from the round score per failed guess.
	WrongGuessPenalty = 1
	// HintCost is subtracted from the round score per used hint.
	HintCost = 3
)

type WordCategory string

const (
	CategoryConcrete WordCategory = "concrete"
	CategoryAbstract WordCategory = "abstract"
)

// Word is a secret word drawn for a single round. Immutable once drawn.
// The quizmaster may use neither the word itself nor any banned term.
type Word struct {
	Text        string       `json:"word"`
	Category    WordCategory `json:"category"`
	BannedTerms []string     `json:"banned_words"`
}

type Hint string

const (
	HintStartingLetter Hint = "startingLetter"
	HintWordLength     Hint = "wordLength"
	HintBannedWord     Hint = "bannedWord"
)

type RoundState string

const (
	StateWaiting  RoundState = "waiting"
	StatePlaying  RoundState = "playing"
	StateFinished RoundState = "finished"
)

type Role string

const (
	RoleQuizmaster Role = "quizmaster"
	RoleGuesser    Role = "guesser"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Round is the mutable unit of play. It is owned by the round engine and
// mutated only through the operations in internal/game. JSON tags follow
// the wire shape of the submitted rounds_data payload.
type Round struct {
	Number      int        `json:"round"`
	State       RoundState `json:"roundState"`
	Timer       int        `json:"roundTimer"`
	Role        Role       `json:"userRole"` // role the human plays this round
	Word        *Word      `json:"word"`
	Description string     `json:"wordDescription"`
	History     []string   `json:"history"`
	UsedHints   []Hint     `json:"usedHints"`
	Score       int        `json:"roundScore"`
	Outcome     Outcome    `json:"outcome,omitempty"` // set on finish
}

// GameSession accumulates finished rounds. Append-only: rounds are pushed
// only when finished and never mutated afterwards.
type GameSession struct {
	TotalScore int     `json:"totalScore"`
	TotalTime  int     `json:"totalTime"` // elapsed seconds across rounds
	Rounds     []Round `json:"rounds"`
}

// Participant is the opaque identity bundle collected by the external form.
// The game core never mutates it.
type Participant struct {
	Avatar         string `json:"avatar"`
	Username       string `json:"username"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	LanguageSkill  string `json:"language_skill"`
	Occupation     string `json:"occupation"`
	EducationLevel string `json:"education_level"`
}

// SessionSummary is the finished-session payload persisted to the
// leaderboard, matching the original submit-session body.
type SessionSummary struct {
	Participant
	TotalScore                 int     `json:"total_score"`
	TotalTime                  int     `json:"total_time"`
	PointsPerRound             float64 `json:"points_per_round"`
	AverageRoundTime           float64 `json:"average_round_time"`
	SuccessfulGuesserRounds    int     `json:"successful_guesser_rounds"`
	SuccessfulQuizmasterRounds int     `json:"successful_quizmaster_rounds"`
	RoundsData                 []Round `json:"rounds_data"`
}

// LeaderboardEntry is one ranked row returned by the leaderboard endpoint.
// Entries come back pre-sorted; rank = array index + 1.
type LeaderboardEntry struct {
	Avatar                     string    `json:"avatar"`
	Username                   string    `json:"username"`
	TotalScore                 int       `json:"total_score"`
	TotalTime                  int       `json:"total_time"`
	PointsPerRound             float64   `json:"points_per_round"`
	AverageRoundTime           float64   `json:"average_round_time"`
	SuccessfulGuesserRounds    int       `json:"successful_guesser_rounds"`
	SuccessfulQuizmasterRounds int       `json:"successful_quizmaster_rounds"`
	SubmittedAt                time.Time `json:"timestamp"`
}
