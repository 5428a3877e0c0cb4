package harness

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"firestige.xyz/ctbench/internal/core"
	"firestige.xyz/ctbench/internal/log"
	"firestige.xyz/ctbench/internal/tracker"
)

// BenchConfig parameterizes one benchmark run.
type BenchConfig struct {
	Threads   int // number of worker goroutines
	Packets   int // submission loop bound per worker
	BatchSize int // packets per batch, 1..core.MaxBurst
	// ChangeConnection makes every packet within a batch a distinct flow
	// instead of resubmitting one flow.
	ChangeConnection bool
	// Zone is passed verbatim on every submission.
	Zone uint16
}

// Validate rejects operator mistakes before any worker is spawned.
func (c *BenchConfig) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("%w: n_threads must be at least one", core.ErrConfigInvalid)
	}
	if c.Packets < 0 {
		return fmt.Errorf("%w: n_pkts must not be negative", core.ErrConfigInvalid)
	}
	if c.BatchSize < 1 || c.BatchSize > core.MaxBurst {
		return fmt.Errorf("%w: batch_size must be between 1 and %d",
			core.ErrConfigInvalid, core.MaxBurst)
	}
	return nil
}

// Benchmark measures sustained multi-worker submission throughput against a
// shared engine.
type Benchmark struct {
	cfg    BenchConfig
	engine tracker.Engine
}

func NewBenchmark(cfg BenchConfig, engine tracker.Engine) *Benchmark {
	return &Benchmark{cfg: cfg, engine: engine}
}

// Run spawns the workers and returns the wall-clock duration of the
// parallel phase only. Every worker builds its own batch before the first
// rendezvous, so batch construction and goroutine startup jitter are
// excluded from the measured interval; the interval ends at the second
// rendezvous, before any join bookkeeping.
//
// Each worker resubmits its one pre-built batch ceil(Packets/BatchSize)
// times. Resubmitting the same batch is deliberate: the run measures
// steady-state per-call overhead against a fixed set of flows, not bounded
// packet consumption.
func (b *Benchmark) Run() (time.Duration, error) {
	cfg := b.cfg
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	logger := log.GetLogger().WithFields(map[string]interface{}{
		"threads":    cfg.Threads,
		"packets":    cfg.Packets,
		"batch_size": cfg.BatchSize,
		"change":     cfg.ChangeConnection,
	})
	logger.Debug("starting benchmark workers")

	bar := newBarrier(cfg.Threads + 1)
	prepErrs := make([]error, cfg.Threads)

	var join sync.WaitGroup
	for tid := 0; tid < cfg.Threads; tid++ {
		join.Add(1)
		go func(tid int) {
			defer join.Done()

			batch, dlType, err := Prepare(cfg.BatchSize, cfg.ChangeConnection, tid)
			if err != nil {
				// Validate makes this unreachable; rendezvous anyway with an
				// empty batch so the run is not deadlocked.
				prepErrs[tid] = err
				batch = core.NewBatch()
			}

			bar.Wait()
			for i := 0; i < cfg.Packets; i += cfg.BatchSize {
				b.engine.Execute(batch, dlType, true, cfg.Zone)
			}
			bar.Wait()
		}(tid)
	}

	bar.Wait()
	start := time.Now()

	bar.Wait()
	elapsed := time.Since(start)

	join.Wait()
	logger.WithField("elapsed", elapsed).Debug("benchmark workers joined")

	return elapsed, errors.Join(prepErrs...)
}
