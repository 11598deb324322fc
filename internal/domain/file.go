package domain

import (
	"io/fs"
	"time"
)

// FileEntry is an immutable metadata snapshot of a candidate file, taken at
// discovery time. Later phases compare against this snapshot to detect files
// that changed underneath the scan.
type FileEntry struct {
	// Path is the path under the search root as given on the command line
	Path string

	// Size in bytes at discovery time
	Size int64

	// Perm holds the permission bits only (mode & 0o777)
	Perm fs.FileMode

	// ModTime is the last modification time
	ModTime time.Time

	// CreateTime is the creation (birth) time where the platform reports
	// one; the zero value means unavailable
	CreateTime time.Time

	// Dev and Inode identify the file for hardlink detection.
	// Both are zero on platforms without stat-level identity.
	Dev   uint64
	Inode uint64

	// Symlink is true if the entry was reached through a symlink
	Symlink bool
}

// DuplicateSet is a verified group of content-equal files.
// After ordering, Files[0] is the original; the remaining members are the
// duplicates an action may be applied to. A set always has >= 2 members.
type DuplicateSet struct {
	Files []FileEntry
}

// Original returns the designated original of the set.
func (s DuplicateSet) Original() FileEntry {
	return s.Files[0]
}

// Duplicates returns the members an action applies to.
func (s DuplicateSet) Duplicates() []FileEntry {
	return s.Files[1:]
}

// Len returns the number of members in the set.
func (s DuplicateSet) Len() int {
	return len(s.Files)
}
