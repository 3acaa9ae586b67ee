package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
)

// SweepFunc runs one pass and reports how many records it changed.
type SweepFunc func(ctx context.Context) (int, error)

// Sweeper runs a SweepFunc on a fixed interval until stopped. A pass that
// fails is logged and retried on the next tick.
type Sweeper struct {
	name     string
	interval time.Duration
	timeout  time.Duration
	sweep    SweepFunc

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	// ctx is cancelled by Stop so an in-flight pass returns early
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSweeper creates a sweeper; each pass gets at most interval to finish.
func NewSweeper(name string, interval time.Duration, sweep SweepFunc) *Sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		name:     name,
		interval: interval,
		timeout:  interval,
		sweep:    sweep,
		stopChan: make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the loop. The first pass runs immediately.
func (s *Sweeper) Start() {
	logger.Log.Info("Starting sweeper", "sweeper", s.name, "interval", s.interval.String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunOnce(s.ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunOnce(s.ctx)
			case <-s.stopChan:
				logger.Log.Info("Sweeper stopped", "sweeper", s.name)
				return
			}
		}
	}()
}

func (s *Sweeper) Name() string { return s.name }

// RunOnce executes a single pass synchronously.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.sweep(ctx)
	if err != nil {
		logger.Log.Error("Sweep failed", "sweeper", s.name, "error", err)
		return n, err
	}
	logger.Log.Debug("Sweep finished",
		"sweeper", s.name, "changed", n, "duration_ms", time.Since(start).Milliseconds())
	return n, nil
}

// Stop ends the loop, cancels an in-flight pass and waits for it to return.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		close(s.stopChan)
	})
	s.wg.Wait()
}

// Group starts and stops several sweepers together.
type Group []*Sweeper

func (g Group) Start() {
	for _, s := range g {
		s.Start()
	}
}

func (g Group) Stop() {
	for _, s := range g {
		s.Stop()
	}
}
