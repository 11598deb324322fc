package classifier

import (
	"sync"

	"github.com/MattiKrause/duplis/internal/core/fingerprint"
	"github.com/MattiKrause/duplis/internal/domain"
)

// CandidateGroups is the shared fingerprint -> members mapping built during
// the fingerprint phase. Insert is the only cross-worker synchronization
// point of that phase.
type CandidateGroups struct {
	mu     sync.Mutex
	groups map[fingerprint.Fingerprint][]domain.FileEntry
}

// NewCandidateGroups creates an empty mapping.
func NewCandidateGroups() *CandidateGroups {
	return &CandidateGroups{groups: make(map[fingerprint.Fingerprint][]domain.FileEntry)}
}

// Insert adds an entry to its fingerprint group. Safe for concurrent use;
// no entry is ever lost or duplicated.
func (g *CandidateGroups) Insert(fp fingerprint.Fingerprint, entry domain.FileEntry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.groups[fp] = append(g.groups[fp], entry)
}

// Len returns the number of distinct fingerprints.
func (g *CandidateGroups) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.groups)
}

// take hands the mapping to the verification phase. The fingerprint phase
// must have completed (pool barrier) before calling it.
func (g *CandidateGroups) take() map[fingerprint.Fingerprint][]domain.FileEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	groups := g.groups
	g.groups = make(map[fingerprint.Fingerprint][]domain.FileEntry)
	return groups
}
