package tickers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ducksquaddd/discord-price-tickers/internal/application/port"
	"github.com/ducksquaddd/discord-price-tickers/internal/domain"
)

type ServiceDeps struct {
	Entries     []Entry
	Source      port.PriceSource
	UpdateEvery time.Duration
	ReadyPoll   time.Duration
}

// Service drives the whole update loop: open all sessions, wait for every one
// to report ready, then run one fetch-and-fan-out cycle immediately and again
// on every tick.
type Service struct {
	deps ServiceDeps
	gate *Gate
}

func NewService(deps ServiceDeps) *Service {
	if deps.UpdateEvery <= 0 {
		deps.UpdateEvery = 5 * time.Minute
	}
	return &Service{
		deps: deps,
		gate: NewGate(deps.Entries, deps.ReadyPoll),
	}
}

// Run blocks until ctx is done or a session fails to open outright. An open
// failure is the one fatal condition in the system; everything past it is
// logged and absorbed.
func (s *Service) Run(ctx context.Context) error {
	if len(s.deps.Entries) == 0 {
		return errors.New("no registry entries")
	}

	if err := s.openAll(); err != nil {
		return err
	}
	defer s.closeAll()

	log.Info().Int("clients", len(s.deps.Entries)).Msg("waiting for all sessions to become ready")
	if err := s.gate.Wait(ctx); err != nil {
		return err
	}
	log.Info().Msg("all sessions ready, starting update cycles")

	s.runCycle(ctx)

	// Cycles run inline in the loop body, so a slow cycle coalesces ticks
	// instead of overlapping the next one.
	t := time.NewTicker(s.deps.UpdateEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.runCycle(ctx)
		}
	}
}

// openAll establishes every session concurrently and returns the first hard
// login failure, if any.
func (s *Service) openAll() error {
	errc := make(chan error, len(s.deps.Entries))
	var wg sync.WaitGroup
	for _, e := range s.deps.Entries {
		wg.Add(1)
		go func(e Entry) {
			defer wg.Done()
			if err := e.Session.Open(); err != nil {
				errc <- fmt.Errorf("open session %s: %w", e.Label, err)
				return
			}
			log.Info().Str("client", e.Label).Msg("session opened")
		}(e)
	}
	wg.Wait()
	close(errc)

	var first error
	for err := range errc {
		log.Error().Err(err).Msg("session open failed")
		if first == nil {
			first = err
		}
	}
	return first
}

func (s *Service) closeAll() {
	for _, e := range s.deps.Entries {
		if err := e.Session.Close(); err != nil {
			log.Warn().Err(err).Str("client", e.Label).Msg("session close failed")
		}
	}
}

// runCycle performs one snapshot fetch and fans the result out to every entry
// concurrently. A fetch failure skips the whole cycle; per-entry failures are
// absorbed inside applyEntry, so the cycle always joins all entries.
func (s *Service) runCycle(ctx context.Context) {
	snap, err := s.deps.Source.Fetch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("price fetch failed, skipping cycle")
		return
	}

	marketDown := domain.MarketDown(snap)

	var wg sync.WaitGroup
	for _, e := range s.deps.Entries {
		a, ok := snap[e.AssetID]
		if !ok {
			// The fetcher guarantees a complete snapshot; this would mean a
			// registry entry tracking an unfetched asset.
			log.Error().Str("asset", e.AssetID).Msg("asset missing from snapshot")
			continue
		}
		wg.Add(1)
		go func(e Entry, a domain.Asset) {
			defer wg.Done()
			applyEntry(e, a, marketDown)
		}(e, a)
	}
	wg.Wait()
}
