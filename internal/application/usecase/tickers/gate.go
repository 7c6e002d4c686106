package tickers

import (
	"context"
	"time"
)

// Gate blocks the scheduler until every session in the registry has completed
// its handshake. Readiness is one-way per session; the gate only reads it.
type Gate struct {
	entries []Entry
	poll    time.Duration
}

func NewGate(entries []Entry, poll time.Duration) *Gate {
	if poll <= 0 {
		poll = time.Second
	}
	return &Gate{entries: entries, poll: poll}
}

// AllReady is the conjunction of every session's ready flag.
func (g *Gate) AllReady() bool {
	for _, e := range g.entries {
		if !e.Session.Ready() {
			return false
		}
	}
	return true
}

// Wait polls AllReady until it holds or ctx is done. There is no timeout:
// the scheduler waits indefinitely for all sessions to come online.
func (g *Gate) Wait(ctx context.Context) error {
	if g.AllReady() {
		return nil
	}
	t := time.NewTicker(g.poll)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if g.AllReady() {
				return nil
			}
		}
	}
}
