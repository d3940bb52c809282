package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/wordgamelab/wordgame-backend/internal"
)

var ErrNotEnoughWords = errors.New("word sequence shorter than the round count")

// Notifier receives the server-to-client messages a match emits. The
// websocket transport implements it; tests substitute a recorder.
type Notifier interface {
	RoundState(snap internal.RoundSnapshot)
	TimerUpdate(data internal.TimerUpdateData)
	RoundFinished(data internal.RoundFinishedData)
	SessionComplete(data internal.SessionCompleteData)
	Error(data internal.ErrorData)
}

// Submitter persists a finished session summary.
type Submitter interface {
	Save(ctx context.Context, summary internal.SessionSummary) error
}

// Config carries the two externally configurable game knobs.
type Config struct {
	MaxRounds    int
	RoundSeconds int
}

// Player commands posted into the match inbox by the transport.
type (
	CmdSetDescription struct{ Text string }
	CmdGuess          struct{ Text string }
	CmdUseHint        struct{ Hint internal.Hint }
	CmdNextRound      struct{}
)

// Match owns one game session: the current round, the session accumulator,
// and the turn coordinator. All state transitions are applied by a single
// goroutine consuming one inbox, in the order events are observed; ticks,
// gateway results, and player commands never race.
type Match struct {
	ID          uuid.UUID
	cfg         Config
	participant internal.Participant
	words       []internal.Word

	round   *internal.Round
	session *internal.GameSession
	coord   *Coordinator

	notifier  Notifier
	submitter Submitter

	inbox chan any
	quit  chan struct{}
	timer *countdown
	ctx   context.Context
	over  bool
}

// NewMatch draws nothing itself; the caller supplies the pre-drawn word
// sequence for the whole session.
func NewMatch(cfg Config, participant internal.Participant, sessionWords []internal.Word, gateway Gateway, notifier Notifier, submitter Submitter) (*Match, error) {
	if len(sessionWords) < cfg.MaxRounds {
		return nil, ErrNotEnoughWords
	}
	m := &Match{
		ID:          uuid.New(),
		cfg:         cfg,
		participant: participant,
		words:       sessionWords,
		session:     NewSession(),
		notifier:    notifier,
		submitter:   submitter,
		inbox:       make(chan any, 64),
		quit:        make(chan struct{}),
	}
	m.coord = NewCoordinator(gateway, m.Post)
	return m, nil
}

// Post delivers an event onto the match's event queue. Safe to call from
// any goroutine; events arriving after the match ended are dropped.
func (m *Match) Post(ev any) {
	select {
	case m.inbox <- ev:
	case <-m.quit:
	}
}

// Run drives the session until all rounds are folded or the context ends.
func (m *Match) Run(ctx context.Context) {
	m.ctx = ctx
	defer close(m.quit)
	defer func() {
		m.timer.stop()
	}()

	log.Printf("[Match %s] session started: rounds=%d timer=%ds user=%s",
		m.ID, m.cfg.MaxRounds, m.cfg.RoundSeconds, m.participant.Username)
	m.startRound(1)

	for {
		select {
		case <-ctx.Done():
			if m.round != nil && m.round.State != internal.StateFinished {
				ForceFinish(m.round)
			}
			return
		case ev := <-m.inbox:
			m.handle(ev)
			if m.over {
				return
			}
		}
	}
}

func (m *Match) handle(ev any) {
	switch ev := ev.(type) {
	case tick:
		m.onTick(ev)
	case descriptionResult:
		m.onDescriptionResult(ev)
	case guessResult:
		m.onGuessResult(ev)
	case CmdSetDescription:
		m.onSetDescription(ev)
	case CmdGuess:
		m.onGuess(ev)
	case CmdUseHint:
		m.onUseHint(ev)
	case CmdNextRound:
		m.onNextRound()
	default:
		log.Printf("[Match %s] dropping unknown event %T", m.ID, ev)
	}
}

func (m *Match) startRound(number int) {
	m.timer.stop()
	m.round = NewRound(number, m.words[number-1], m.cfg.RoundSeconds)
	m.coord.Reset(number)
	m.timer = startCountdown(m.ctx, number, m.Post)

	log.Printf("[Match %s] round %d started: humanRole=%s category=%s",
		m.ID, number, m.round.Role, m.round.Word.Category)
	m.notifier.RoundState(m.snapshot())
	m.coord.Evaluate(m.ctx, m.round)
}

func (m *Match) onTick(ev tick) {
	r := m.round
	if r == nil || ev.round != r.Number || r.State == internal.StateFinished {
		return
	}
	if !TimerRuns(r) {
		return
	}
	expired := Tick(r)
	m.notifier.TimerUpdate(internal.TimerUpdateData{TimeRemaining: r.Timer, State: r.State})
	if expired {
		log.Printf("[Match %s] round %d expired by timer", m.ID, r.Number)
		m.finishRound()
	}
}

func (m *Match) onSetDescription(ev CmdSetDescription) {
	r := m.round
	if r == nil || r.Role != internal.RoleQuizmaster {
		m.notifier.Error(internal.ErrorData{Message: "only the quizmaster sets the description"})
		return
	}
	// Banned-term screening happens here, at the boundary; a rejected
	// description never reaches the engine.
	if err := ValidateDescription(r.Word, ev.Text); err != nil {
		m.notifier.Error(internal.ErrorData{Message: err.Error()})
		return
	}
	if err := SetDescription(r, ev.Text); err != nil {
		m.notifier.Error(internal.ErrorData{Message: err.Error()})
		return
	}
	m.coord.Arm()
	m.notifier.RoundState(m.snapshot())
	m.coord.Evaluate(m.ctx, r)
}

func (m *Match) onGuess(ev CmdGuess) {
	r := m.round
	if r == nil || r.Role != internal.RoleGuesser {
		m.notifier.Error(internal.ErrorData{Message: "only the guesser submits guesses"})
		return
	}
	correct, err := AttemptGuess(r, ev.Text)
	if err != nil {
		m.notifier.Error(internal.ErrorData{Message: err.Error()})
		return
	}
	log.Printf("[Match %s] round %d: human guessed %q correct=%t score=%d",
		m.ID, r.Number, ev.Text, correct, r.Score)
	m.notifier.RoundState(m.snapshot())
	if r.State == internal.StateFinished {
		m.finishRound()
	}
}

func (m *Match) onUseHint(ev CmdUseHint) {
	r := m.round
	if r == nil {
		return
	}
	if err := UseHint(r, ev.Hint); err != nil {
		m.notifier.Error(internal.ErrorData{Message: err.Error()})
		return
	}
	log.Printf("[Match %s] round %d: hint %s used, score=%d", m.ID, r.Number, ev.Hint, r.Score)
	if r.Role == internal.RoleQuizmaster {
		// Hint granted on behalf of the agent guesser re-arms one guess.
		m.coord.Arm()
	}
	m.notifier.RoundState(m.snapshot())
	m.coord.Evaluate(m.ctx, r)
}

func (m *Match) onDescriptionResult(ev descriptionResult) {
	r := m.round
	if r == nil || ev.round != r.Number || r.State == internal.StateFinished {
		log.Printf("[Match %s] discarding stale description for round %d", m.ID, ev.round)
		return
	}
	if ev.err != nil {
		m.abortRound(ev.err)
		return
	}
	if err := SetDescription(r, ev.text); err != nil {
		// An unusable description would leave the round stuck in waiting
		// with no timer running, so it is as fatal as a transport failure.
		m.abortRound(fmt.Errorf("unusable agent description: %w", err))
		return
	}
	m.notifier.RoundState(m.snapshot())
}

func (m *Match) onGuessResult(ev guessResult) {
	m.coord.GuessResolved()
	r := m.round
	if r == nil || ev.round != r.Number || r.State == internal.StateFinished {
		log.Printf("[Match %s] discarding stale guess for round %d", m.ID, ev.round)
		return
	}
	if ev.err != nil {
		m.abortRound(ev.err)
		return
	}
	correct, err := AttemptGuess(r, ev.guess)
	if err != nil {
		log.Printf("[Match %s] round %d: agent guess rejected: %v", m.ID, r.Number, err)
		return
	}
	log.Printf("[Match %s] round %d: agent guessed %q correct=%t score=%d",
		m.ID, r.Number, ev.guess, correct, r.Score)
	m.notifier.RoundState(m.snapshot())
	if r.State == internal.StateFinished {
		m.finishRound()
	}
	// A wrong agent guess ends its turn; the next hint re-arms it.
}

func (m *Match) onNextRound() {
	r := m.round
	if r == nil || r.State != internal.StateFinished || m.over {
		m.notifier.Error(internal.ErrorData{Message: "round still in progress"})
		return
	}
	if len(m.session.Rounds) >= m.cfg.MaxRounds {
		m.notifier.Error(internal.ErrorData{Message: "session already complete"})
		return
	}
	m.startRound(r.Number + 1)
}

// abortRound handles a gateway transport failure: fatal for the round,
// never retried.
func (m *Match) abortRound(err error) {
	r := m.round
	log.Printf("[Match %s] round %d aborted: %v", m.ID, r.Number, err)
	m.notifier.Error(internal.ErrorData{Message: "language-model gateway failed: " + err.Error(), Fatal: true})
	ForceFinish(r)
	m.finishRound()
}

func (m *Match) finishRound() {
	m.timer.stop()
	r := m.round
	if err := FoldRound(m.session, r, m.cfg.RoundSeconds); err != nil {
		log.Printf("[Match %s] fold failed: %v", m.ID, err)
		return
	}
	last := len(m.session.Rounds) >= m.cfg.MaxRounds
	log.Printf("[Match %s] round %d finished: outcome=%s score=%d totalScore=%d totalTime=%ds",
		m.ID, r.Number, r.Outcome, r.Score, m.session.TotalScore, m.session.TotalTime)

	m.notifier.RoundFinished(internal.RoundFinishedData{
		Round:      r.Number,
		Outcome:    r.Outcome,
		Score:      r.Score,
		Word:       r.Word,
		LastRound:  last,
		TotalScore: m.session.TotalScore,
		TotalTime:  m.session.TotalTime,
	})
	if last {
		m.completeSession()
	}
}

func (m *Match) completeSession() {
	summary := Summarize(m.session, m.participant)
	submitted := false
	if m.submitter != nil {
		if err := m.submitter.Save(m.ctx, summary); err != nil {
			log.Printf("[Match %s] session submission failed: %v", m.ID, err)
			m.notifier.Error(internal.ErrorData{Message: "failed to submit session: " + err.Error(), Fatal: true})
		} else {
			submitted = true
		}
	}
	log.Printf("[Match %s] session complete: totalScore=%d totalTime=%ds submitted=%t",
		m.ID, summary.TotalScore, summary.TotalTime, submitted)
	m.notifier.SessionComplete(internal.SessionCompleteData{Summary: summary, Submitted: submitted})
	m.over = true
}

// snapshot builds the role-aware round view: the human quizmaster sees the
// word and its banned terms, the human guesser only the revealed hints.
func (m *Match) snapshot() internal.RoundSnapshot {
	r := m.round
	snap := internal.RoundSnapshot{
		Round:       r.Number,
		State:       r.State,
		Timer:       r.Timer,
		Role:        r.Role,
		Description: r.Description,
		History:     r.History,
		UsedHints:   r.UsedHints,
		Score:       r.Score,
		TotalScore:  m.session.TotalScore,
		TotalTime:   m.session.TotalTime,
	}
	if r.Role == internal.RoleQuizmaster {
		snap.Word = r.Word
	} else {
		snap.HintReveals = HintReveals(r)
	}
	return snap
}
