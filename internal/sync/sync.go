package sync

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/groblegark/seasonplan/internal/store"
)

// Destination receives the JSONL plan export on every sync cycle.
type Destination interface {
	Write(ctx context.Context, data []byte) error
}

// Scheduler periodically exports every season and its tasks from the store
// and pushes the snapshot to each configured destination. One failing
// destination does not stop the others.
type Scheduler struct {
	store    store.Store
	dests    []Destination
	interval time.Duration
	logger   *slog.Logger

	started bool
	stop    chan struct{}
	done    chan struct{}
}

func NewScheduler(s store.Store, dests []Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:    s,
		dests:    dests,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sync loop. The first export runs immediately; later
// ones run on the interval until Stop is called.
func (s *Scheduler) Start() {
	s.started = true
	go func() {
		defer close(s.done)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			<-s.stop
			cancel()
		}()

		s.exportAll(ctx)

		tick := time.NewTicker(s.interval)
		defer tick.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-tick.C:
				s.exportAll(ctx)
			}
		}
	}()
}

// Stop ends the loop and blocks until an in-flight export has finished.
// Safe to call when Start was never called.
func (s *Scheduler) Stop() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	if !s.started {
		return
	}
	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		s.logger.Warn("sync shutdown timed out waiting for export")
	}
}

func (s *Scheduler) exportAll(ctx context.Context) {
	var buf bytes.Buffer
	if err := ExportJSONL(ctx, s.store, &buf); err != nil {
		s.logger.Error("plan export failed", "err", err)
		return
	}

	snapshot := buf.Bytes()
	for _, d := range s.dests {
		if err := d.Write(ctx, snapshot); err != nil {
			s.logger.Error("sync destination write failed", "destination", destName(d), "err", err)
		}
	}
	s.logger.Info("plan sync completed", "destinations", len(s.dests), "bytes", len(snapshot))
}

func destName(d Destination) string {
	switch d.(type) {
	case *S3Destination:
		return "s3"
	case *GitDestination:
		return "git"
	default:
		return "custom"
	}
}
