// Package order sorts duplicate sets by a composite ordering spec. The
// minimal element under the combined comparator becomes the set's original
// and is exempt from every action.
package order

import (
	"sort"
	"strings"

	"github.com/MattiKrause/duplis/internal/domain"
)

// Sort orders the set in place. Terms apply in decreasing priority: the
// first term that distinguishes two entries decides. When at least one
// non-as_is term is present, ascending path comparison breaks remaining
// ties, making the result deterministic for identical inputs. A spec
// consisting only of as_is terms leaves the classifier's order untouched;
// that order is non-deterministic and not reproducible.
func Sort(set *domain.DuplicateSet, spec domain.OrderSpec) {
	terms := effectiveTerms(spec)
	if len(terms) == 0 {
		return
	}

	files := set.Files
	sort.SliceStable(files, func(i, j int) bool {
		return compare(&files[i], &files[j], terms) < 0
	})
}

// effectiveTerms drops as_is terms; they impose nothing.
func effectiveTerms(spec domain.OrderSpec) []domain.OrderTerm {
	terms := make([]domain.OrderTerm, 0, len(spec))
	for _, term := range spec {
		if term.Criterion != domain.OrderAsIs {
			terms = append(terms, term)
		}
	}
	return terms
}

func compare(a, b *domain.FileEntry, terms []domain.OrderTerm) int {
	for _, term := range terms {
		c := compareCriterion(a, b, term.Criterion)
		if c == 0 {
			continue
		}
		if term.Reversed {
			return -c
		}
		return c
	}
	// deterministic tie-break
	return strings.Compare(a.Path, b.Path)
}

func compareCriterion(a, b *domain.FileEntry, criterion domain.OrderCriterion) int {
	switch criterion {
	case domain.OrderModTime:
		return a.ModTime.Compare(b.ModTime)
	case domain.OrderCreateTime:
		return a.CreateTime.Compare(b.CreateTime)
	case domain.OrderAlphabetic:
		return strings.Compare(a.Path, b.Path)
	default:
		return 0
	}
}
