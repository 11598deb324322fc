// Package progress tracks scan counters across the engine's phases.
package progress

import "sync/atomic"

// Tracker counts per-phase work. All methods are safe for concurrent use;
// the fingerprint workers increment it from multiple goroutines.
type Tracker struct {
	discovered    atomic.Int64
	fingerprinted atomic.Int64
	fileErrors    atomic.Int64
	sets          atomic.Int64
	duplicates    atomic.Int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Discovered    int64
	Fingerprinted int64
	FileErrors    int64
	Sets          int64
	Duplicates    int64
}

func (t *Tracker) AddDiscovered()    { t.discovered.Add(1) }
func (t *Tracker) AddFingerprinted() { t.fingerprinted.Add(1) }
func (t *Tracker) AddFileError()     { t.fileErrors.Add(1) }

// AddSet records one confirmed duplicate set of the given size.
func (t *Tracker) AddSet(size int) {
	t.sets.Add(1)
	t.duplicates.Add(int64(size - 1))
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Discovered:    t.discovered.Load(),
		Fingerprinted: t.fingerprinted.Load(),
		FileErrors:    t.fileErrors.Load(),
		Sets:          t.sets.Load(),
		Duplicates:    t.duplicates.Load(),
	}
}
