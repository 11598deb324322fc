package classifier

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/MattiKrause/duplis/internal/domain"
)

// Workload ranks verifiers by cost so cheap checks run first.
type Workload int

const (
	// WorkloadMetadata compares a file property
	WorkloadMetadata Workload = iota
	// WorkloadContent reads the file content itself
	WorkloadContent
)

// Verifier is a secondary equality check applied after fingerprint grouping.
// Fingerprint equality is necessary but never sufficient; only files all
// verifiers confirm equal end up in the same duplicate set.
type Verifier interface {
	// Equal reports whether a and b are equal under this check. A read
	// failure is reported as a *SideError naming the faulty member(s).
	Equal(a, b *domain.FileEntry) (bool, error)

	// Workload returns the cost class of this check
	Workload() Workload
}

// SideError reports which side of a comparison could not be read.
type SideError struct {
	FirstFaulty  bool
	SecondFaulty bool
	Err          error
}

func (e *SideError) Error() string {
	return "comparison failed: " + e.Err.Error()
}

func (e *SideError) Unwrap() error {
	return e.Err
}

// SortVerifiers orders verifiers by increasing workload, in place.
func SortVerifiers(verifiers []Verifier) []Verifier {
	sort.SliceStable(verifiers, func(i, j int) bool {
		return verifiers[i].Workload() < verifiers[j].Workload()
	})
	return verifiers
}

// PermVerifier considers files with differing permission bits distinct even
// when their content matches. It compares the discovery-time snapshot.
type PermVerifier struct{}

func (PermVerifier) Equal(a, b *domain.FileEntry) (bool, error) {
	return a.Perm == b.Perm, nil
}

func (PermVerifier) Workload() Workload { return WorkloadMetadata }

// ContentVerifier compares two files byte by byte to rule out fingerprint
// collisions. Memory use is bounded by two fixed buffers.
type ContentVerifier struct {
	// BufferSize per side; default 64KB
	BufferSize int
}

func (v ContentVerifier) Workload() Workload { return WorkloadContent }

func (v ContentVerifier) Equal(a, b *domain.FileEntry) (bool, error) {
	bufSize := v.BufferSize
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}

	fileA, err := os.Open(a.Path)
	if err != nil {
		return false, &SideError{FirstFaulty: true, Err: err}
	}
	defer fileA.Close()

	fileB, err := os.Open(b.Path)
	if err != nil {
		return false, &SideError{SecondFaulty: true, Err: err}
	}
	defer fileB.Close()

	infoA, err := fileA.Stat()
	if err != nil {
		return false, &SideError{FirstFaulty: true, Err: err}
	}
	infoB, err := fileB.Stat()
	if err != nil {
		return false, &SideError{SecondFaulty: true, Err: err}
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	bufA := make([]byte, bufSize)
	bufB := make([]byte, bufSize)
	for {
		nA, errA := io.ReadFull(fileA, bufA)
		if errA != nil && errA != io.EOF && errA != io.ErrUnexpectedEOF {
			return false, &SideError{FirstFaulty: true, Err: errA}
		}
		nB, errB := io.ReadFull(fileB, bufB)
		if errB != nil && errB != io.EOF && errB != io.ErrUnexpectedEOF {
			return false, &SideError{SecondFaulty: true, Err: errB}
		}

		if nA != nB || !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}
		if nA < bufSize {
			return true, nil
		}
	}
}
