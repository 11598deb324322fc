//go:build darwin

package scanner

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/MattiKrause/duplis/internal/domain"
)

// fillStatExtra fills device id, inode and creation time from the stat
// result; darwin reports the birth time directly.
func fillStatExtra(entry *domain.FileEntry) {
	var st unix.Stat_t
	var err error
	if entry.Symlink {
		err = unix.Stat(entry.Path, &st)
	} else {
		err = unix.Lstat(entry.Path, &st)
	}
	if err != nil {
		return
	}

	entry.Dev = uint64(st.Dev)
	entry.Inode = st.Ino
	entry.CreateTime = time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
}
