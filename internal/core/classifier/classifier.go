// Package classifier turns fingerprinted candidates into confirmed
// duplicate sets. Grouping by fingerprint happens concurrently during the
// fingerprint phase; verification runs afterwards and may split a candidate
// group into several sets, or dissolve it entirely.
package classifier

import (
	"context"
	"errors"
	"sync"

	"github.com/MattiKrause/duplis/internal/domain"
	"github.com/MattiKrause/duplis/internal/logger"
	"github.com/MattiKrause/duplis/internal/scheduler"
)

// Classifier verifies candidate groups and promotes them to duplicate sets.
type Classifier struct {
	verifiers []Verifier

	// Workers caps concurrent group verification; every in-flight content
	// comparison holds two file handles
	Workers int
}

// New creates a classifier with the given verifiers, cheapest check first.
func New(verifiers []Verifier, workers int) *Classifier {
	return &Classifier{
		verifiers: SortVerifiers(verifiers),
		Workers:   workers,
	}
}

// Classify consumes the completed candidate mapping and returns every
// confirmed duplicate set. The order of the returned sets and of members
// inside a set is unspecified; set membership is deterministic for a given
// input regardless of worker count.
func (c *Classifier) Classify(ctx context.Context, groups *CandidateGroups) []domain.DuplicateSet {
	var (
		mu   sync.Mutex
		sets []domain.DuplicateSet
	)

	pool := scheduler.NewPool(c.Workers)
	for _, members := range groups.take() {
		if len(members) < 2 {
			continue
		}
		members := members
		pool.Go(func() {
			if ctx.Err() != nil {
				return
			}
			verified := c.verifyGroup(members)
			if len(verified) == 0 {
				return
			}
			mu.Lock()
			sets = append(sets, verified...)
			mu.Unlock()
		})
	}
	pool.Wait()

	return sets
}

// verifyGroup splits one candidate group into pairwise-confirmed subsets.
// Members failing verification against a subset form (or join) another
// subset; members that cannot be read are dropped with a file event.
func (c *Classifier) verifyGroup(members []domain.FileEntry) []domain.DuplicateSet {
	var subsets [][]domain.FileEntry

memberLoop:
	for i := range members {
		member := &members[i]
		for si := range subsets {
			equal, drop := c.fitsInto(&subsets[si], member)
			if drop {
				continue memberLoop
			}
			if equal {
				subsets[si] = append(subsets[si], *member)
				continue memberLoop
			}
		}
		subsets = append(subsets, []domain.FileEntry{*member})
	}

	var sets []domain.DuplicateSet
	for _, subset := range subsets {
		if len(subset) == 0 {
			// every member was dropped with a file event already
			continue
		}
		if len(subset) < 2 {
			logger.Event(logger.CatFileSetErr, "candidate group collapsed below two members",
				"path", subset[0].Path)
			continue
		}
		sets = append(sets, domain.DuplicateSet{Files: subset})
	}
	return sets
}

// fitsInto compares member against the subset's representative under every
// verifier. An unreadable representative is removed and the next member
// takes its place; an unreadable candidate is dropped from classification
// entirely (drop=true).
func (c *Classifier) fitsInto(subset *[]domain.FileEntry, member *domain.FileEntry) (equal, drop bool) {
	for len(*subset) > 0 {
		rep := &(*subset)[0]

		equal, err := c.equalUnderAll(rep, member)
		if err == nil {
			return equal, false
		}

		var side *SideError
		if !errors.As(err, &side) {
			// treat unclassified failures as a faulty candidate
			logger.Event(logger.CatFileErr, "verification failed", "path", member.Path, "error", err)
			return false, true
		}
		if side.FirstFaulty {
			logger.Event(logger.CatFileErr, "file dropped from verification", "path", rep.Path, "error", side.Err)
			*subset = (*subset)[1:]
		}
		if side.SecondFaulty {
			logger.Event(logger.CatFileErr, "file dropped from verification", "path", member.Path, "error", side.Err)
			return false, true
		}
	}
	return false, false
}

func (c *Classifier) equalUnderAll(a, b *domain.FileEntry) (bool, error) {
	for _, verifier := range c.verifiers {
		equal, err := verifier.Equal(a, b)
		if err != nil {
			return false, err
		}
		if !equal {
			return false, nil
		}
	}
	return true, nil
}
