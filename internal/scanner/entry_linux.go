//go:build linux

package scanner

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/MattiKrause/duplis/internal/domain"
)

// fillStatExtra fills device id, inode and creation time. The birth time is
// only available through statx and not on every filesystem; it stays zero
// when the kernel does not report it.
func fillStatExtra(entry *domain.FileEntry) {
	// entries reached through a symlink identify as their target
	flags := unix.AT_SYMLINK_NOFOLLOW
	if entry.Symlink {
		flags = 0
	}

	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, entry.Path, flags, unix.STATX_BASIC_STATS|unix.STATX_BTIME, &stx)
	if err != nil {
		return
	}

	entry.Dev = unix.Mkdev(stx.Dev_major, stx.Dev_minor)
	entry.Inode = stx.Ino
	if stx.Mask&unix.STATX_BTIME != 0 {
		entry.CreateTime = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
}
