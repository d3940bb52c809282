package game

import (
	"context"
	"time"
)

// tick is posted into the match inbox once per second while a round's
// countdown source is alive. Tagged with the round it belongs to so a late
// tick cannot touch a newer round.
type tick struct {
	round int
}

// countdown is the single timer source for one active round. It does not
// hold any game state: it only emits tick events; the round engine owns
// the logical countdown value.
type countdown struct {
	cancel context.CancelFunc
}

// startCountdown launches a 1-second ticker goroutine posting tick events
// until stopped. The match loop stops it on transition to finished.
func startCountdown(parent context.Context, roundNumber int, post func(ev any)) *countdown {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				post(tick{round: roundNumber})
			case <-ctx.Done():
				return
			}
		}
	}()

	return &countdown{cancel: cancel}
}

func (c *countdown) stop() {
	if c != nil && c.cancel != nil {
		c.cancel()
	}
}
