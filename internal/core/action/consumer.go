package action

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MattiKrause/duplis/internal/domain"
	"github.com/MattiKrause/duplis/internal/logger"
)

// SetConsumer handles one ordered duplicate set at a time. Files[0] is the
// original; every other member is a duplicate the consumer may act on.
// A returned error aborts the remaining action phase; per-duplicate failures
// are raised as events instead and never abort.
type SetConsumer interface {
	ConsumeSet(set domain.DuplicateSet) error
}

// ConsumerFor assembles the consumer for the configured modes.
func ConsumerFor(kind domain.ActionKind, confirm domain.ConfirmMode, format domain.ReportFormat, out io.Writer, in io.Reader) (SetConsumer, error) {
	if confirm == domain.ConfirmOff {
		switch format {
		case domain.ReportPairwise:
			return &ReportPairwise{Out: out}, nil
		case domain.ReportSetwise:
			return &ReportSetwise{Out: out}, nil
		default:
			return &DryRun{Out: out}, nil
		}
	}

	act, err := ActionFor(kind)
	if err != nil {
		return nil, err
	}
	if confirm == domain.ConfirmInteractive {
		return &Interactive{Action: act, In: bufio.NewReader(in), Out: out}, nil
	}
	return &Immediate{Action: act}, nil
}

// DryRun prints one human-readable line per set and never mutates anything.
type DryRun struct {
	Out io.Writer
}

func (d *DryRun) ConsumeSet(set domain.DuplicateSet) error {
	var sb strings.Builder
	sb.WriteString("keeping ")
	sb.WriteString(set.Original().Path)
	sb.WriteString(", dry-deleting ")
	for i, dup := range set.Duplicates() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(dup.Path)
	}
	_, err := fmt.Fprintln(d.Out, sb.String())
	return err
}

// ReportPairwise prints one "original,duplicate" line per duplicate.
// Paths containing a comma cannot be represented and are skipped with a
// format event.
type ReportPairwise struct {
	Out io.Writer
}

func (r *ReportPairwise) ConsumeSet(set domain.DuplicateSet) error {
	// an unrepresentable original is dropped and the next comma-free member
	// takes its place, so the rest of the set is still reported
	var orig string
	rest := set.Files
	for len(rest) > 0 {
		candidate := rest[0].Path
		rest = rest[1:]
		if !reportableComma(candidate) {
			orig = candidate
			break
		}
	}
	if orig == "" {
		return nil
	}
	for _, dup := range rest {
		if reportableComma(dup.Path) {
			continue
		}
		if _, err := fmt.Fprintf(r.Out, "%s,%s\n", orig, dup.Path); err != nil {
			return err
		}
	}
	return nil
}

// ReportSetwise prints one comma-joined line per set, original first.
type ReportSetwise struct {
	Out io.Writer
}

func (r *ReportSetwise) ConsumeSet(set domain.DuplicateSet) error {
	paths := make([]string, 0, set.Len())
	for _, file := range set.Files {
		if reportableComma(file.Path) {
			continue
		}
		paths = append(paths, file.Path)
	}
	if len(paths) < 2 {
		return nil
	}
	_, err := fmt.Fprintln(r.Out, strings.Join(paths, ","))
	return err
}

// reportableComma reports and skips paths that cannot appear in the
// comma-separated machine-readable formats.
func reportableComma(path string) bool {
	if !strings.Contains(path, ",") {
		return false
	}
	logger.Event(logger.CatFileFormatErr,
		"path contains a ',' and cannot be written in machine readable format", "path", path)
	return true
}

// Immediate applies the action to every duplicate without prompting.
type Immediate struct {
	Action FileAction
}

func (c *Immediate) ConsumeSet(set domain.DuplicateSet) error {
	files, original := liveOriginal(set.Files)
	if original == nil {
		return nil
	}
	for i := range files {
		dup := &files[i]
		applyTo(c.Action, dup, original)
	}
	return nil
}

// Interactive asks for confirmation per duplicate before applying. A decline
// skips the duplicate; a malformed answer is raised as a user-interaction
// event and treated as a decline; a closed input aborts the action phase.
type Interactive struct {
	Action FileAction
	In     *bufio.Reader
	Out    io.Writer
}

func (c *Interactive) ConsumeSet(set domain.DuplicateSet) error {
	files, original := liveOriginal(set.Files)
	if original == nil {
		return nil
	}
	for i := range files {
		dup := &files[i]
		if !stillExists(dup.Path) {
			continue
		}

		if _, err := fmt.Fprintf(c.Out, "%s %s? [y/n] ", c.Action.Name(), dup.Path); err != nil {
			return err
		}
		line, err := c.In.ReadString('\n')
		if err != nil && line == "" {
			logger.Event(logger.CatUserInteractionErr, "cannot accept input in interactive mode since the input is closed")
			return domain.ErrInputClosed
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			applyTo(c.Action, dup, original)
		case "n", "no":
			// declined, keep the duplicate
		default:
			logger.Event(logger.CatUserInteractionErr,
				"unrecognised answer; only y(es) and n(o) are accepted, treating as decline")
		}
	}
	return nil
}

// applyTo runs the action for one duplicate and raises the outcome event.
// A failure concerns this duplicate only; the caller continues.
func applyTo(act FileAction, dup, original *domain.FileEntry) {
	if !stillExists(dup.Path) {
		logger.Event(logger.CatFileErr, "file vanished before action", "path", dup.Path, "error", domain.ErrFileVanished)
		return
	}
	if err := act.Apply(dup, original); err != nil {
		logger.Event(logger.CatFatalActionFailure, "action failed",
			"action", act.Name(), "path", dup.Path, "original", original.Path, "error", err)
		return
	}
	logger.Event(logger.CatActionSuccess, "action applied",
		"action", act.Name(), "path", dup.Path, "original", original.Path)
}

// liveOriginal finds the first still-existing member to serve as original
// and returns the members after it. Vanished originals are skipped with a
// file event; nil means the whole set dissolved.
func liveOriginal(files []domain.FileEntry) ([]domain.FileEntry, *domain.FileEntry) {
	for i := range files {
		if stillExists(files[i].Path) {
			return files[i+1:], &files[i]
		}
		logger.Event(logger.CatFileErr, "original vanished, falling forward", "path", files[i].Path, "error", domain.ErrFileVanished)
	}
	return nil, nil
}

func stillExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
