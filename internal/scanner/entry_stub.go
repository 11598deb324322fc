//go:build !linux && !darwin

package scanner

import "github.com/MattiKrause/duplis/internal/domain"

// fillStatExtra is a no-op where stat-level identity is unavailable; device
// id, inode and creation time stay zero.
func fillStatExtra(_ *domain.FileEntry) {}
