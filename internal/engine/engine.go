// Package engine orchestrates a full run: discovery feeds the fingerprint
// workers, a barrier separates fingerprinting from verification, and only
// after classification has fully completed do ordering and action
// application begin. A failure during the action phase can therefore never
// corrupt or rerun classification.
package engine

import (
	"context"
	"errors"

	"github.com/MattiKrause/duplis/internal/core/action"
	"github.com/MattiKrause/duplis/internal/core/classifier"
	"github.com/MattiKrause/duplis/internal/core/fingerprint"
	"github.com/MattiKrause/duplis/internal/core/order"
	"github.com/MattiKrause/duplis/internal/domain"
	"github.com/MattiKrause/duplis/internal/logger"
	"github.com/MattiKrause/duplis/internal/progress"
	"github.com/MattiKrause/duplis/internal/scanner"
	"github.com/MattiKrause/duplis/internal/scheduler"
)

// Fingerprinter computes a content fingerprint for a file.
type Fingerprinter interface {
	File(ctx context.Context, path string) (fingerprint.Fingerprint, error)
}

// Source yields discovered candidates. Implementations exist for directory
// walking and for externally supplied path lists.
type Source interface {
	Emit(emit func(domain.FileEntry)) error
}

// WalkSource adapts a scanner.Walker over fixed roots to the Source shape.
type WalkSource struct {
	Walker *scanner.Walker
	Roots  []string
}

func (s WalkSource) Emit(emit func(domain.FileEntry)) error {
	s.Walker.Walk(s.Roots, emit)
	return nil
}

// Engine runs the classification and action pipeline.
type Engine struct {
	// Hasher fingerprints candidates; defaults to the xxhash hasher
	Hasher Fingerprinter

	// Verifiers confirm set membership beyond the fingerprint
	Verifiers []classifier.Verifier

	// OrderSpec designates each set's original
	OrderSpec domain.OrderSpec

	// Consumer receives every ordered set
	Consumer action.SetConsumer

	// Workers bounds the fingerprint and verification pools
	Workers int

	// Tracker is optional; a nil tracker is replaced internally
	Tracker *progress.Tracker
}

// Run executes all phases and returns the final counters. The returned
// error reflects discovery or consumer failure; per-file failures are
// raised as events and absorbed.
func (e *Engine) Run(ctx context.Context, source Source) (progress.Snapshot, error) {
	if e.Hasher == nil {
		e.Hasher = fingerprint.NewDefault()
	}
	if e.Tracker == nil {
		e.Tracker = &progress.Tracker{}
	}
	log := logger.Get()

	// phase 1: discovery + fingerprint fan-out
	groups := classifier.NewCandidateGroups()
	pool := scheduler.NewPool(e.Workers)
	srcErr := source.Emit(func(entry domain.FileEntry) {
		e.Tracker.AddDiscovered()
		pool.Go(func() {
			if ctx.Err() != nil {
				return
			}
			fp, err := e.Hasher.File(ctx, entry.Path)
			if err != nil {
				e.Tracker.AddFileError()
				if errors.Is(err, domain.ErrFileChanged) {
					logger.Event(logger.CatFileErr, "file was modified while being processed, dropping it", "path", entry.Path)
				} else {
					logger.Event(logger.CatFileErr, "failed to fingerprint file", "path", entry.Path, "error", err)
				}
				return
			}
			groups.Insert(fp, entry)
			e.Tracker.AddFingerprinted()
		})
	})
	// barrier: candidate membership must be stable before verification
	pool.Wait()

	if srcErr != nil {
		return e.Tracker.Snapshot(), srcErr
	}
	if err := ctx.Err(); err != nil {
		return e.Tracker.Snapshot(), err
	}

	// phase 2: verification
	cls := classifier.New(e.Verifiers, e.Workers)
	sets := cls.Classify(ctx, groups)

	// cancellation during verification leaves partial sets; never let those
	// reach the action phase
	if err := ctx.Err(); err != nil {
		return e.Tracker.Snapshot(), err
	}

	// phase 3: ordering + action application, strictly after classification
	for _, set := range sets {
		if err := ctx.Err(); err != nil {
			return e.Tracker.Snapshot(), err
		}
		order.Sort(&set, e.OrderSpec)
		e.Tracker.AddSet(set.Len())
		if err := e.Consumer.ConsumeSet(set); err != nil {
			if errors.Is(err, domain.ErrInputClosed) {
				log.Warn("aborting remaining sets", "error", err)
				break
			}
			return e.Tracker.Snapshot(), err
		}
	}

	snap := e.Tracker.Snapshot()
	log.Info("run complete",
		"discovered", snap.Discovered,
		"fingerprinted", snap.Fingerprinted,
		"file_errors", snap.FileErrors,
		"duplicate_sets", snap.Sets,
		"duplicates", snap.Duplicates,
	)
	return snap, nil
}
