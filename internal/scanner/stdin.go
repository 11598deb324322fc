package scanner

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"

	"github.com/MattiKrause/duplis/internal/domain"
	"github.com/MattiKrause/duplis/internal/filter"
	"github.com/MattiKrause/duplis/internal/logger"
)

// ListSource reads a newline-delimited list of candidate file paths instead
// of walking directories. It is mutually exclusive with directory discovery;
// config validation enforces that.
type ListSource struct {
	// Reader supplies the path list, usually stdin
	Reader io.Reader

	// Filter rejects candidates; nil means keep everything
	Filter *filter.Filter
}

// Emit reads all paths, stats and filters each one and calls emit for every
// surviving candidate. Directories in the list are skipped with a discovery
// event; lines that are not valid UTF-8 are skipped with a format event.
func (s *ListSource) Emit(emit func(domain.FileEntry)) error {
	sc := bufio.NewScanner(s.Reader)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if !utf8.ValidString(line) {
			logger.Event(logger.CatFileFormatErr, "candidate list line is not valid UTF-8, skipping")
			continue
		}

		if s.Filter != nil && !s.Filter.KeepName(line) {
			continue
		}

		info, err := os.Stat(line)
		if err != nil {
			logger.Event(logger.CatFileDiscoveryErr, "failed to stat candidate", "path", line, "error", err)
			continue
		}
		if !info.Mode().IsRegular() {
			logger.Event(logger.CatFileDiscoveryErr, "candidate is not a regular file", "path", line)
			continue
		}
		if s.Filter != nil && !s.Filter.KeepMetadata(info) {
			continue
		}

		emit(NewEntry(line, info, false))
	}
	return sc.Err()
}
