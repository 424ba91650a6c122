// Package sampler drives the periodic sampling loop. On each tick it reads
// every registered source concurrently under a per-source timeout, writes
// available readings into the history store, and assembles an immutable
// snapshot for consumers. At most one pass is in flight at a time; a pass
// that overruns the tick interval causes the next tick to be skipped rather
// than queued.
package sampler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/tinyland/lab/rkmon/history"
	"gitlab.com/tinyland/lab/rkmon/metrics"
	"gitlab.com/tinyland/lab/rkmon/snapshot"
	"gitlab.com/tinyland/lab/rkmon/status"
)

const (
	// defaultInterval is the tick cadence when none is configured.
	defaultInterval = 1 * time.Second

	// defaultTimeoutDivisor bounds a source read to a fraction of the tick
	// interval when no explicit timeout is configured.
	defaultTimeoutDivisor = 2
)

// Config wires an Engine. Registry, Store, and Evaluator are required.
type Config struct {
	// Interval is the tick cadence. Zero means one second.
	Interval time.Duration

	// SourceTimeout bounds each source read within a tick. Zero means
	// half the interval.
	SourceTimeout time.Duration

	// Registry holds the sources sampled each tick.
	Registry *metrics.Registry

	// Store receives available readings. The engine is its only writer.
	Store *history.Store

	// Evaluator assigns severity tiers during snapshot assembly.
	Evaluator *status.Evaluator

	// OnSnapshot, if set, is called with each completed snapshot after it
	// becomes visible via Latest. It runs on the sampling goroutine, so it
	// must be quick.
	OnSnapshot func(*snapshot.Snapshot)
}

// Engine is the running sampling loop. Create one with Start; it samples
// until Stop is called. Latest may be called concurrently from any
// goroutine.
type Engine struct {
	cfg       Config
	logger    *slog.Logger
	assembler *snapshot.Assembler

	latest atomic.Pointer[snapshot.Snapshot]

	// seq and epoch belong to the sampling goroutine only.
	seq   uint64
	epoch time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// Start validates the configuration and launches the sampling loop. The
// first pass runs immediately; subsequent passes follow the fixed cadence.
// If logger is nil, a no-op logger is used.
func Start(cfg Config, logger *slog.Logger) (*Engine, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("sampler: registry is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("sampler: history store is required")
	}
	if cfg.Evaluator == nil {
		return nil, fmt.Errorf("sampler: evaluator is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = cfg.Interval / defaultTimeoutDivisor
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		cfg:       cfg,
		logger:    logger,
		assembler: snapshot.NewAssembler(cfg.Store, cfg.Evaluator),
		done:      make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.epoch = time.Now()

	go e.run(ctx)
	return e, nil
}

// Latest returns the most recently completed snapshot, or nil before the
// first tick finishes. The returned snapshot is immutable; callers must not
// modify it.
func (e *Engine) Latest() *snapshot.Snapshot {
	return e.latest.Load()
}

// Stop cancels the sampling loop and waits for it to exit. The stop signal
// is checked at the top of each tick and inside each per-source wait, so
// shutdown completes within one tick's worst case, not instantly.
func (e *Engine) Stop() {
	e.cancel()
	<-e.done
}

// run is the sampling loop. The ticker fires on the fixed cadence so a long
// pass does not accumulate drift; ticks missed while a pass ran long are
// dropped, never queued.
func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	e.pass(ctx, ticker)

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("sampler: loop stopped")
			return
		case <-ticker.C:
			e.pass(ctx, ticker)
		}
	}
}

// pass runs one tick and, if the pass outlasted the interval, discards the
// tick the ticker buffered meanwhile. A missed tick is skipped at the next
// cadence boundary, never queued back-to-back.
func (e *Engine) pass(ctx context.Context, ticker *time.Ticker) {
	start := time.Now()
	e.tick(ctx)
	if time.Since(start) >= e.cfg.Interval {
		select {
		case <-ticker.C:
		default:
		}
	}
}

// tick performs one full sampling pass: sequence assignment, concurrent
// source reads with join-wait, history appends, and snapshot assembly.
func (e *Engine) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()

	seq := nextSequence(e.seq, e.epoch, e.cfg.Interval, start)
	if skipped := seq - e.seq - 1; skipped > 0 && e.seq > 0 {
		e.logger.Warn("sampler: tick overrun, skipped ticks",
			"skipped", skipped,
			"seq", seq,
		)
	}
	e.seq = seq

	readings := e.collect(ctx)
	if ctx.Err() != nil {
		// Stop arrived mid-pass. Do not publish a partial tick.
		return
	}

	// Single-writer: only this goroutine appends to the store.
	for _, r := range readings {
		e.cfg.Store.Append(r)
	}

	snap := e.assembler.Build(seq, start, readings)
	e.latest.Store(snap)

	if e.cfg.OnSnapshot != nil {
		e.cfg.OnSnapshot(snap)
	}

	if elapsed := time.Since(start); elapsed > e.cfg.Interval {
		e.logger.Warn("sampler: pass exceeded tick interval",
			"elapsed", elapsed,
			"interval", e.cfg.Interval,
		)
	}
}

// collect reads all sources concurrently and join-waits on the results.
// Sources are independent: one failing or timing out affects only its own
// metrics. The returned sample set is complete, with every registered
// metric present.
func (e *Engine) collect(ctx context.Context) map[metrics.ID]metrics.Reading {
	sources := e.cfg.Registry.All()
	results := make(chan []metrics.Reading, len(sources))

	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src metrics.Source) {
			defer wg.Done()
			results <- e.readSource(ctx, src)
		}(src)
	}
	wg.Wait()
	close(results)

	out := make(map[metrics.ID]metrics.Reading)
	for rs := range results {
		for _, r := range rs {
			out[r.Metric] = r
		}
	}

	// A source that returned fewer readings than it declared still yields
	// a complete sample set.
	now := time.Now()
	for _, id := range e.cfg.Registry.Metrics() {
		if _, ok := out[id]; !ok {
			out[id] = metrics.Unavailable(id, now)
		}
	}

	return out
}

// readSource runs one source read bounded by the per-source timeout. On
// timeout (or engine stop) its metrics become Unavailable for this tick;
// the abandoned read finishes in the background and is discarded.
func (e *Engine) readSource(ctx context.Context, src metrics.Source) []metrics.Reading {
	rctx, cancel := context.WithTimeout(ctx, e.cfg.SourceTimeout)
	defer cancel()

	ch := make(chan []metrics.Reading, 1)
	go func() {
		ch <- src.Read(rctx)
	}()

	select {
	case rs := <-ch:
		return rs
	case <-rctx.Done():
		e.logger.Debug("sampler: source timed out",
			"source", src.Name(),
			"timeout", e.cfg.SourceTimeout,
		)
		now := time.Now()
		ids := src.Metrics()
		rs := make([]metrics.Reading, 0, len(ids))
		for _, id := range ids {
			rs = append(rs, metrics.Unavailable(id, now))
		}
		return rs
	}
}

// nextSequence assigns the tick number from elapsed time since the epoch so
// ticks skipped during an overrun advance the counter without any sequence
// number being produced twice.
func nextSequence(prev uint64, epoch time.Time, interval time.Duration, now time.Time) uint64 {
	slot := uint64(now.Sub(epoch)/interval) + 1
	if slot <= prev {
		slot = prev + 1
	}
	return slot
}
