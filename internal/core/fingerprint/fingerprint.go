// Package fingerprint computes streamed content digests for candidate
// files. A fingerprint is a cheap pre-filter for equality: equal files
// always share a fingerprint, but only verification proves set membership.
package fingerprint

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/MattiKrause/duplis/internal/domain"
)

// Algorithm tags the digest algorithm of a fingerprint.
type Algorithm string

// XXH64 is the only supported algorithm; xxhash is not cryptographic, which
// is exactly why verification exists downstream.
const XXH64 Algorithm = "xxh64"

// Fingerprint is a content digest plus its algorithm tag.
type Fingerprint struct {
	Sum  uint64
	Algo Algorithm
}

// Options configures the hasher.
type Options struct {
	// BufferSize is the streaming read buffer; memory use per file is
	// bounded by it regardless of file size.
	// Default: 32KB
	BufferSize int
}

// DefaultOptions returns the recommended default options.
func DefaultOptions() Options {
	return Options{BufferSize: 32 * 1024}
}

// Hasher computes file fingerprints.
type Hasher struct {
	opts Options
}

// New creates a hasher with the given options.
func New(opts Options) *Hasher {
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultOptions().BufferSize
	}
	return &Hasher{opts: opts}
}

// NewDefault creates a hasher with default options.
func NewDefault() *Hasher {
	return New(DefaultOptions())
}

// FromReader streams the reader through the digest.
func (h *Hasher) FromReader(ctx context.Context, reader io.Reader) (Fingerprint, error) {
	digest := xxhash.New()
	buffer := make([]byte, h.opts.BufferSize)

	for {
		select {
		case <-ctx.Done():
			return Fingerprint{}, ctx.Err()
		default:
		}

		n, err := reader.Read(buffer)
		if n > 0 {
			// xxhash.Digest.Write never fails
			_, _ = digest.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Fingerprint{}, fmt.Errorf("read error: %w", err)
		}
	}

	return Fingerprint{Sum: digest.Sum64(), Algo: XXH64}, nil
}

// File fingerprints the file at path. The modification time is sampled
// before and after the streamed read; if it moved, the file was written to
// mid-hash and the result would describe no version that ever existed on
// disk, so domain.ErrFileChanged is returned instead.
func (h *Hasher) File(ctx context.Context, path string) (Fingerprint, error) {
	file, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, err
	}
	defer file.Close()

	before, err := file.Stat()
	if err != nil {
		return Fingerprint{}, err
	}

	fp, err := h.FromReader(ctx, file)
	if err != nil {
		return Fingerprint{}, err
	}

	after, err := file.Stat()
	if err != nil {
		return Fingerprint{}, err
	}
	if !before.ModTime().Equal(after.ModTime()) {
		return Fingerprint{}, domain.ErrFileChanged
	}

	return fp, nil
}
