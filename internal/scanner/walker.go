// Package scanner discovers candidate files, either by walking directory
// trees or by reading an externally supplied path list. Every discovered
// candidate is filtered before it is emitted; unreadable paths raise a
// discovery event and the walk continues with their siblings.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MattiKrause/duplis/internal/domain"
	"github.com/MattiKrause/duplis/internal/filter"
	"github.com/MattiKrause/duplis/internal/logger"
)

// Walker traverses directory trees and emits filtered FileEntry snapshots.
type Walker struct {
	// Recurse descends into subdirectories
	Recurse bool

	// FollowSymlinks resolves symlinks to files and directories; without it
	// symlinked entries are skipped entirely
	FollowSymlinks bool

	// Filter rejects candidates; nil means keep everything
	Filter *filter.Filter
}

// Walk traverses all roots and calls emit for every surviving candidate.
// Emission order is unspecified.
func (w *Walker) Walk(roots []string, emit func(domain.FileEntry)) {
	// iterative traversal; the stack keeps memory bounded by tree depth
	// times fan-out rather than by goroutine count
	stack := make([]string, len(roots))
	copy(stack, roots)

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Event(logger.CatFileDiscoveryErr, "failed to read directory", "path", dir, "error", err)
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			switch {
			case entry.Type().IsRegular():
				w.emitFile(path, entry, false, emit)
			case entry.IsDir():
				if w.Recurse {
					stack = append(stack, path)
				}
			case entry.Type()&fs.ModeSymlink != 0:
				if !w.FollowSymlinks {
					continue
				}
				info, err := os.Stat(path)
				if err != nil {
					logger.Event(logger.CatFileDiscoveryErr, "failed to follow symlink", "path", path, "error", err)
					continue
				}
				if info.Mode().IsRegular() {
					w.emitInfo(path, info, true, emit)
				} else if info.IsDir() && w.Recurse {
					stack = append(stack, path)
				}
			}
		}
	}
}

func (w *Walker) emitFile(path string, entry fs.DirEntry, symlink bool, emit func(domain.FileEntry)) {
	if w.Filter != nil && !w.Filter.KeepName(path) {
		return
	}
	info, err := entry.Info()
	if err != nil {
		logger.Event(logger.CatFileDiscoveryErr, "failed to read file metadata", "path", path, "error", err)
		return
	}
	w.emitChecked(path, info, symlink, emit)
}

func (w *Walker) emitInfo(path string, info fs.FileInfo, symlink bool, emit func(domain.FileEntry)) {
	if w.Filter != nil && !w.Filter.KeepName(path) {
		return
	}
	w.emitChecked(path, info, symlink, emit)
}

func (w *Walker) emitChecked(path string, info fs.FileInfo, symlink bool, emit func(domain.FileEntry)) {
	if w.Filter != nil && !w.Filter.KeepMetadata(info) {
		return
	}
	emit(NewEntry(path, info, symlink))
}

// NewEntry builds the immutable discovery-time snapshot for a candidate.
func NewEntry(path string, info fs.FileInfo, symlink bool) domain.FileEntry {
	entry := domain.FileEntry{
		Path:    path,
		Size:    info.Size(),
		Perm:    info.Mode().Perm(),
		ModTime: info.ModTime(),
		Symlink: symlink,
	}
	fillStatExtra(&entry)
	return entry
}
