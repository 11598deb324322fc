package classifier

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/MattiKrause/duplis/internal/core/fingerprint"
	"github.com/MattiKrause/duplis/internal/domain"
	"github.com/MattiKrause/duplis/internal/testutil"
)

func entryFor(t *testing.T, path string) domain.FileEntry {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	return domain.FileEntry{
		Path:    path,
		Size:    info.Size(),
		Perm:    info.Mode().Perm(),
		ModTime: info.ModTime(),
	}
}

func groupOf(fp uint64, entries ...domain.FileEntry) *CandidateGroups {
	groups := NewCandidateGroups()
	for _, e := range entries {
		groups.Insert(fingerprint.Fingerprint{Sum: fp, Algo: fingerprint.XXH64}, e)
	}
	return groups
}

// setPaths returns the sorted member paths of every set, sorted for
// order-independent comparison.
func setPaths(sets []domain.DuplicateSet) [][]string {
	out := make([][]string, 0, len(sets))
	for _, set := range sets {
		paths := make([]string, 0, set.Len())
		for _, f := range set.Files {
			paths = append(paths, filepath.Base(f.Path))
		}
		sort.Strings(paths)
		out = append(out, paths)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// TestEqualFilesFormOneSet tests that verified equal files end up in a
// single set
func TestEqualFilesFormOneSet(t *testing.T) {
	dir := t.TempDir()
	a := testutil.CreateTestFile(t, dir, "a", []byte("same"))
	b := testutil.CreateTestFile(t, dir, "b", []byte("same"))
	c := testutil.CreateTestFile(t, dir, "c", []byte("same"))

	cls := New([]Verifier{ContentVerifier{}}, 1)
	sets := cls.Classify(context.Background(), groupOf(1, entryFor(t, a), entryFor(t, b), entryFor(t, c)))

	if len(sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(sets))
	}
	if sets[0].Len() != 3 {
		t.Errorf("set has %d members, want 3", sets[0].Len())
	}
}

// TestCollidingGroupIsSplit tests that a candidate group with unequal
// content is split into per-content sets
func TestCollidingGroupIsSplit(t *testing.T) {
	dir := t.TempDir()
	a1 := testutil.CreateTestFile(t, dir, "a1", []byte("alpha"))
	a2 := testutil.CreateTestFile(t, dir, "a2", []byte("alpha"))
	b1 := testutil.CreateTestFile(t, dir, "b1", []byte("bravo"))
	b2 := testutil.CreateTestFile(t, dir, "b2", []byte("bravo"))

	cls := New([]Verifier{ContentVerifier{}}, 1)
	// all four share one fingerprint, as in a hash collision
	sets := cls.Classify(context.Background(),
		groupOf(1, entryFor(t, a1), entryFor(t, b1), entryFor(t, a2), entryFor(t, b2)))

	got := setPaths(sets)
	if len(got) != 2 {
		t.Fatalf("got %d sets, want 2: %v", len(got), got)
	}
	want := [][]string{{"a1", "a2"}, {"b1", "b2"}}
	for i := range want {
		if len(got[i]) != 2 || got[i][0] != want[i][0] || got[i][1] != want[i][1] {
			t.Errorf("sets = %v, want %v", got, want)
			break
		}
	}
}

// TestCollapsedSingletonIsDiscarded tests that a split leaving a single
// member produces no one-element set
func TestCollapsedSingletonIsDiscarded(t *testing.T) {
	dir := t.TempDir()
	a1 := testutil.CreateTestFile(t, dir, "a1", []byte("alpha"))
	a2 := testutil.CreateTestFile(t, dir, "a2", []byte("alpha"))
	lone := testutil.CreateTestFile(t, dir, "lone", []byte("other"))

	cls := New([]Verifier{ContentVerifier{}}, 1)
	sets := cls.Classify(context.Background(),
		groupOf(1, entryFor(t, a1), entryFor(t, a2), entryFor(t, lone)))

	if len(sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(sets))
	}
	for _, f := range sets[0].Files {
		if filepath.Base(f.Path) == "lone" {
			t.Error("singleton member leaked into a set")
		}
	}
}

// TestPermissionSplit tests that equal content with differing permission
// bits is kept apart
func TestPermissionSplit(t *testing.T) {
	dir := t.TempDir()
	a := testutil.CreateTestFile(t, dir, "a", []byte("same"))
	b := testutil.CreateTestFile(t, dir, "b", []byte("same"))
	testutil.Chmod(t, a, 0644)
	testutil.Chmod(t, b, 0600)

	cls := New([]Verifier{ContentVerifier{}, PermVerifier{}}, 1)
	sets := cls.Classify(context.Background(), groupOf(1, entryFor(t, a), entryFor(t, b)))

	if len(sets) != 0 {
		t.Errorf("got %d sets, want 0: permissions differ", len(sets))
	}
}

// TestSmallGroupsSkipped tests that groups below two members never reach
// verification
func TestSmallGroupsSkipped(t *testing.T) {
	dir := t.TempDir()
	a := testutil.CreateTestFile(t, dir, "a", []byte("alone"))

	cls := New([]Verifier{ContentVerifier{}}, 1)
	sets := cls.Classify(context.Background(), groupOf(1, entryFor(t, a)))

	if len(sets) != 0 {
		t.Errorf("got %d sets, want 0", len(sets))
	}
}

// TestFaultyMemberDropped tests that an unreadable member is dropped while
// the remaining members still form a set
func TestFaultyMemberDropped(t *testing.T) {
	dir := t.TempDir()
	a := testutil.CreateTestFile(t, dir, "a", []byte("same"))
	b := testutil.CreateTestFile(t, dir, "b", []byte("same"))

	gone := entryFor(t, a)
	gone.Path = filepath.Join(dir, "vanished")

	cls := New([]Verifier{ContentVerifier{}}, 1)
	sets := cls.Classify(context.Background(), groupOf(1, gone, entryFor(t, a), entryFor(t, b)))

	if len(sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(sets))
	}
	if sets[0].Len() != 2 {
		t.Errorf("set has %d members, want 2", sets[0].Len())
	}
}

// TestMembershipDeterministicAcrossWorkers tests that worker count does not
// change set membership
func TestMembershipDeterministicAcrossWorkers(t *testing.T) {
	dir := t.TempDir()
	groups := func() *CandidateGroups {
		g := NewCandidateGroups()
		for i, content := range []string{"one", "one", "two", "two", "two"} {
			name := string(rune('a' + i))
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				testutil.CreateTestFile(t, dir, name, []byte(content))
			}
			fp := uint64(len(content))
			g.Insert(fingerprint.Fingerprint{Sum: fp, Algo: fingerprint.XXH64}, entryFor(t, path))
		}
		return g
	}

	single := New([]Verifier{ContentVerifier{}}, 1).Classify(context.Background(), groups())
	many := New([]Verifier{ContentVerifier{}}, 8).Classify(context.Background(), groups())

	a, b := setPaths(single), setPaths(many)
	if len(a) != len(b) {
		t.Fatalf("set count differs: %v vs %v", a, b)
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			t.Fatalf("membership differs: %v vs %v", a, b)
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("membership differs: %v vs %v", a, b)
			}
		}
	}
}

// TestVerifierOrdering tests that metadata checks sort before content checks
func TestVerifierOrdering(t *testing.T) {
	verifiers := SortVerifiers([]Verifier{ContentVerifier{}, PermVerifier{}})
	if verifiers[0].Workload() != WorkloadMetadata {
		t.Error("metadata verifier should sort first")
	}
}

// TestContentVerifierSmallBuffer tests comparison across buffer boundaries
func TestContentVerifierSmallBuffer(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, 1000)
	for i := range content {
		content[i] = byte(i % 251)
	}
	a := testutil.CreateTestFile(t, dir, "a", content)
	b := testutil.CreateTestFile(t, dir, "b", content)

	diff := make([]byte, 1000)
	copy(diff, content)
	diff[999] = ^diff[999]
	c := testutil.CreateTestFile(t, dir, "c", diff)

	v := ContentVerifier{BufferSize: 17}
	ea, eb, ec := entryFor(t, a), entryFor(t, b), entryFor(t, c)

	equal, err := v.Equal(&ea, &eb)
	if err != nil || !equal {
		t.Errorf("equal files reported unequal (err=%v)", err)
	}
	equal, err = v.Equal(&ea, &ec)
	if err != nil || equal {
		t.Errorf("files differing in the last byte reported equal (err=%v)", err)
	}
}

// TestSideErrorAttribution tests that open failures name the faulty side
func TestSideErrorAttribution(t *testing.T) {
	dir := t.TempDir()
	ok := entryFor(t, testutil.CreateTestFile(t, dir, "ok", []byte("x")))
	bad := ok
	bad.Path = filepath.Join(dir, "missing")

	v := ContentVerifier{}

	_, err := v.Equal(&bad, &ok)
	side, isSide := err.(*SideError)
	if !isSide || !side.FirstFaulty || side.SecondFaulty {
		t.Errorf("expected first-side error, got %v", err)
	}

	_, err = v.Equal(&ok, &bad)
	side, isSide = err.(*SideError)
	if !isSide || side.FirstFaulty || !side.SecondFaulty {
		t.Errorf("expected second-side error, got %v", err)
	}
}
