package internal

// Message is the generic websocket envelope for both directions.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Client -> server payloads.

type StartSessionData struct {
	Participant Participant `json:"participant"`
}

type SetDescriptionData struct {
	Description string `json:"description"`
}

type GuessData struct {
	Guess string `json:"guess"`
}

type UseHintData struct {
	Hint Hint `json:"hint"`
}

// Server -> client payloads.

// RoundSnapshot is the role-aware view of the current round. The secret
// word is omitted whenever the human plays guesser; revealed hint values
// are included instead.
type RoundSnapshot struct {
	Round       int             `json:"round"`
	State       RoundState      `json:"state"`
	Timer       int             `json:"timer"`
	Role        Role            `json:"role"`
	Word        *Word           `json:"word,omitempty"`
	Description string          `json:"description"`
	History     []string        `json:"history"`
	UsedHints   []Hint          `json:"used_hints"`
	HintReveals map[Hint]string `json:"hint_reveals,omitempty"`
	Score       int             `json:"score"`
	TotalScore  int             `json:"total_score"`
	TotalTime   int             `json:"total_time"`
}

type TimerUpdateData struct {
	TimeRemaining int        `json:"time_remaining"`
	State         RoundState `json:"state"`
}

// RoundFinishedData reveals the word once the round is terminal.
type RoundFinishedData struct {
	Round      int     `json:"round"`
	Outcome    Outcome `json:"outcome"`
	Score      int     `json:"score"`
	Word       *Word   `json:"word"`
	LastRound  bool    `json:"last_round"`
	TotalScore int     `json:"total_score"`
	TotalTime  int     `json:"total_time"`
}

type SessionCompleteData struct {
	Summary   SessionSummary `json:"summary"`
	Submitted bool           `json:"submitted"`
}

type ErrorData struct {
	Message string `json:"message"`
	Fatal   bool   `json:"fatal"`
}
