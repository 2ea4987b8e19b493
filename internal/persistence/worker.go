// Package persistence drains the shared queue into the database in
// transactional batches.
package persistence

import (
	"context"
	"time"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
	"github.com/switch527/coin-base/internal/infrastructure/rediscache"
	"github.com/switch527/coin-base/internal/queue"
	"github.com/switch527/coin-base/pkg/errors"
	"github.com/switch527/coin-base/pkg/logger"
	"github.com/switch527/coin-base/pkg/postgresql"
)

// Worker owns the only goroutine that writes to the database. Feed consumers
// never touch storage directly; they only push onto the queue.
type Worker struct {
	queue         *queue.Queue
	stores        map[v1.Kind]v1.Store
	tx            postgresql.Transaction
	cache         rediscache.LatestCache
	commitEvery   int
	flushInterval time.Duration
	logger        logger.Interface
}

// Config bundles the worker dependencies.
type Config struct {
	Queue         *queue.Queue
	Stores        map[v1.Kind]v1.Store
	Transaction   postgresql.Transaction
	Cache         rediscache.LatestCache
	CommitEvery   int
	FlushInterval time.Duration
	Logger        logger.Interface
}

// NewWorker creates a persistence worker.
func NewWorker(cfg Config) *Worker {
	commitEvery := cfg.CommitEvery
	if commitEvery <= 0 {
		commitEvery = 10
	}
	flushInterval := cfg.FlushInterval
	if flushInterval <= 0 {
		flushInterval = time.Second
	}

	return &Worker{
		queue:         cfg.Queue,
		stores:        cfg.Stores,
		tx:            cfg.Transaction,
		cache:         cfg.Cache,
		commitEvery:   commitEvery,
		flushInterval: flushInterval,
		logger:        cfg.Logger,
	}
}

// Run drains the queue, sleeps for the flush interval, and repeats until the
// context is cancelled. Cycle errors are logged, never fatal.
func (w *Worker) Run(ctx context.Context) {
	for {
		if err := w.RunCycle(ctx); err != nil {
			w.logger.Error(errors.TracerFromError(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.flushInterval):
		}
	}
}

// RunCycle empties the queue as of the moment it starts looking. Records are
// inserted inside a transaction that is committed after every commitEvery
// records, plus once at the end for the remainder. A failed batch is rolled
// back and dropped; the cycle keeps going with a fresh transaction.
func (w *Worker) RunCycle(ctx context.Context) error {
	var (
		txCtx   context.Context
		pending []v1.Record
	)

	reset := func() {
		txCtx = nil
		pending = pending[:0]
	}

	commit := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := w.tx.Commit(txCtx); err != nil {
			reset()
			return err
		}
		if w.cache != nil {
			for _, rec := range pending {
				w.cache.Set(ctx, rec)
			}
		}
		reset()
		return nil
	}

	var firstErr error
	for {
		rec, ok := w.queue.TryPop()
		if !ok {
			break
		}

		if txCtx == nil {
			var err error
			txCtx, err = w.tx.Begin(ctx)
			if err != nil {
				// Nothing is in flight yet, so the record can go back.
				w.queue.Push(rec)
				return err
			}
		}

		store, ok := w.stores[rec.Kind()]
		if !ok {
			w.logger.WarnContext(ctx, "no store for record kind", logger.Field{Key: "kind", Value: string(rec.Kind())})
			continue
		}

		if err := store.Insert(txCtx, rec); err != nil {
			// The transaction is poisoned; everything in it is lost.
			if rbErr := w.tx.Rollback(txCtx); rbErr != nil {
				w.logger.Error(errors.TracerFromError(rbErr))
			}
			reset()
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		pending = append(pending, rec)

		if len(pending) == w.commitEvery {
			if err := commit(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	if err := commit(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
