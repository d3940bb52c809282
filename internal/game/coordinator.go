package game

import (
	"context"
	"log"

	"github.com/wordgamelab/wordgame-backend/internal"
)

// Gateway is the language-model service the automated player runs on.
// The secret word is passed to GuessWord only so the gateway can evaluate
// its own candidate locally; it is never part of the prompt context.
type Gateway interface {
	GenerateDescription(ctx context.Context, word string, bannedTerms []string) (string, error)
	GuessWord(ctx context.Context, description, history, word string) (string, error)
}

// descriptionResult and guessResult are posted back into the match inbox
// tagged with the round they were issued for, so stale completions can be
// discarded.
type descriptionResult struct {
	round int
	text  string
	err   error
}

type guessResult struct {
	round int
	guess string
	err   error
}

// Coordinator decides, after each round-engine transition, whether the
// automated agent owes an action, and keeps at most one gateway request in
// flight. It never mutates the round itself; results flow back through the
// match inbox and are applied by the engine operations.
type Coordinator struct {
	gateway Gateway
	post    func(ev any)

	round                int
	descriptionRequested bool
	guessArmed           bool
	guessInFlight        bool
}

func NewCoordinator(gateway Gateway, post func(ev any)) *Coordinator {
	return &Coordinator{gateway: gateway, post: post}
}

// Reset rebinds the coordinator to a new round. All dispatch guards start
// cleared.
func (c *Coordinator) Reset(roundNumber int) {
	c.round = roundNumber
	c.descriptionRequested = false
	c.guessArmed = false
	c.guessInFlight = false
}

// Arm re-arms exactly one agent guess. Called when the human quizmaster
// sets the description and whenever they grant a hint. A wrong agent guess
// does not re-arm; the agent's turn ends until the next hint.
func (c *Coordinator) Arm() {
	c.guessArmed = true
}

// Evaluate inspects the round and issues at most one request. It is safe
// to call repeatedly after the same state change: the requested/in-flight
// flags make duplicate dispatch a no-op.
func (c *Coordinator) Evaluate(ctx context.Context, r *internal.Round) {
	if r.State == internal.StateFinished || r.Number != c.round {
		return
	}

	switch r.Role {
	case internal.RoleGuesser:
		// Agent plays quizmaster: it owes the description.
		if r.State == internal.StateWaiting && r.Description == "" && !c.descriptionRequested {
			c.descriptionRequested = true
			round := r.Number
			word := r.Word.Text
			banned := r.Word.BannedTerms
			log.Printf("[Coordinator] round %d: requesting description for %q", round, word)
			go func() {
				text, err := c.gateway.GenerateDescription(ctx, word, banned)
				c.post(descriptionResult{round: round, text: text, err: err})
			}()
		}
	case internal.RoleQuizmaster:
		// Agent plays guesser: one guess per arming event.
		if r.State == internal.StatePlaying && c.guessArmed && !c.guessInFlight {
			c.guessArmed = false
			c.guessInFlight = true
			round := r.Number
			description := r.Description
			solverCtx := SolverContext(r)
			word := r.Word.Text
			log.Printf("[Coordinator] round %d: requesting guess", round)
			go func() {
				guess, err := c.gateway.GuessWord(ctx, description, solverCtx, word)
				c.post(guessResult{round: round, guess: guess, err: err})
			}()
		}
	}
}

// GuessResolved clears the in-flight guard once a guess result has been
// observed by the match loop, stale or not.
func (c *Coordinator) GuessResolved() {
	c.guessInFlight = false
}
