/*
sweeper.go - Expired result purge

PURPOSE:
  Periodically deletes stored calculations whose expiry has passed, so the
  store does not grow without bound. Reads already treat expired records
  as missing; the sweep only reclaims space.

DESIGN:
  - Runs a background goroutine with a configurable interval
  - Sweeps once immediately on Start
  - Stop waits for an in-flight sweep to finish

USAGE:
  sweeper := NewExpirySweeper(results, 5*time.Minute, logger)
  sweeper.Start()
  // ... later
  sweeper.Stop()

SEE ALSO:
  - store/store.go: ResultStore.Sweep
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/warp/severance-engine/store"
)

// ExpirySweeper purges expired results on an interval.
type ExpirySweeper struct {
	Store    store.ResultStore
	Interval time.Duration
	Timeout  time.Duration

	logger *slog.Logger
	now    func() time.Time
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewExpirySweeper creates a sweeper. A nil logger selects slog.Default().
func NewExpirySweeper(results store.ResultStore, interval time.Duration, logger *slog.Logger) *ExpirySweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpirySweeper{
		Store:    results,
		Interval: interval,
		Timeout:  30 * time.Second,
		logger:   logger.With("component", "sweeper"),
		now:      time.Now,
	}
}

// Start begins the sweeper. Calling Start on a running sweeper is a no-op.
func (s *ExpirySweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return
	}
	s.ticker = time.NewTicker(s.Interval)
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run(s.ticker, s.stop)

	s.logger.Info("started", "interval", s.Interval.String())
}

// Stop stops the sweeper and waits for it to exit.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
	s.ticker = nil
	s.logger.Info("stopped")
}

func (s *ExpirySweeper) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	s.SweepOnce()

	for {
		select {
		case <-ticker.C:
			s.SweepOnce()
		case <-stop:
			return
		}
	}
}

// SweepOnce runs a single purge and returns how many records were removed.
func (s *ExpirySweeper) SweepOnce() int {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	n, err := s.Store.Sweep(ctx, s.now())
	if err != nil {
		s.logger.Error("sweep failed", "error", err)
		return 0
	}
	if n > 0 {
		s.logger.Info("expired results removed", "count", n)
	}
	return n
}
