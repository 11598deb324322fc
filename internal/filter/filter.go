// Package filter applies cheap candidate filters before any file content is
// read. Path-only checks (extension, path-prefix blacklist) run first so
// that rejected files never cost a stat; size checks run on the metadata the
// walker already holds.
package filter

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// NoExtension is the sentinel token denoting "file has no extension" in
// extension black- and whitelists.
const NoExtension = "~"

// Config describes all candidate filters.
type Config struct {
	// MinSize keeps files with size >= MinSize
	MinSize int64

	// MaxSize keeps files with size < MaxSize; 0 disables the check
	MaxSize int64

	// NonZero excludes zero-byte files regardless of MinSize
	NonZero bool

	// ExtBlacklist drops files whose extension is in the set.
	// ExtWhitelist keeps only files whose extension is in the set.
	// At most one of the two may be non-empty; both understand the
	// NoExtension sentinel. Extensions are stored without a leading dot.
	ExtBlacklist []string
	ExtWhitelist []string

	// PathBlacklist drops files whose path has one of these prefixes
	PathBlacklist []string
}

// Filter is a compiled Config.
type Filter struct {
	minSize      int64
	maxSize      int64
	exts         map[string]bool
	noExtInSet   bool
	extWhitelist bool
	hasExtFilter bool
	pathPrefixes []string
}

// New compiles the config into a filter.
func New(cfg Config) *Filter {
	f := &Filter{
		minSize: cfg.MinSize,
		maxSize: cfg.MaxSize,
	}
	if cfg.NonZero && f.minSize < 1 {
		f.minSize = 1
	}

	extList := cfg.ExtBlacklist
	if len(cfg.ExtWhitelist) > 0 {
		extList = cfg.ExtWhitelist
		f.extWhitelist = true
	}
	if len(extList) > 0 {
		f.hasExtFilter = true
		f.exts = make(map[string]bool, len(extList))
		for _, ext := range extList {
			if ext == NoExtension {
				f.noExtInSet = true
				continue
			}
			f.exts[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
		}
	}

	for _, prefix := range cfg.PathBlacklist {
		f.pathPrefixes = append(f.pathPrefixes, filepath.Clean(prefix))
	}

	return f
}

// KeepName runs the path-only checks. It must be called before KeepMetadata
// and before any IO on the candidate.
func (f *Filter) KeepName(path string) bool {
	if f.hasExtFilter {
		inSet := f.extInSet(path)
		if f.extWhitelist != inSet {
			return false
		}
	}

	for _, prefix := range f.pathPrefixes {
		if hasPathPrefix(path, prefix) {
			return false
		}
	}

	return true
}

// KeepMetadata runs the metadata checks on a stat result.
func (f *Filter) KeepMetadata(info fs.FileInfo) bool {
	return f.KeepSize(info.Size())
}

// KeepSize reports whether a file of the given size passes the size checks.
func (f *Filter) KeepSize(size int64) bool {
	if size < f.minSize {
		return false
	}
	if f.maxSize > 0 && size >= f.maxSize {
		return false
	}
	return true
}

func (f *Filter) extInSet(path string) bool {
	ext := filepath.Ext(filepath.Base(path))
	if ext == "" {
		return f.noExtInSet
	}
	return f.exts[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// hasPathPrefix reports whether path is prefix itself or lies under it.
func hasPathPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+string(filepath.Separator))
}
