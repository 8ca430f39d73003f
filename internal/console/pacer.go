package console

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// Pacer slows the table down so a human can follow bot turns
type Pacer struct {
	clock  quartz.Clock
	turn   time.Duration
	result time.Duration
}

// NewPacer creates a pacer. Zero delays disable the corresponding pause.
func NewPacer(clock quartz.Clock, turn, result time.Duration) *Pacer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Pacer{clock: clock, turn: turn, result: result}
}

// BeforeTurn pauses before a bot acts
func (p *Pacer) BeforeTurn(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.Wait(ctx, p.turn)
}

// AfterResult pauses after a challenge has been resolved
func (p *Pacer) AfterResult(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.Wait(ctx, p.result)
}

// Wait blocks for d on the pacer's clock or until ctx is done
func (p *Pacer) Wait(ctx context.Context, d time.Duration) error {
	if p == nil || d <= 0 {
		return nil
	}

	fired := make(chan struct{})
	timer := p.clock.AfterFunc(d, func() {
		close(fired)
	})
	defer timer.Stop()

	select {
	case <-fired:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
