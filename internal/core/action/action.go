// Package action applies the configured consequence (report, delete,
// replace with hardlink/symlink) to the duplicates of each ordered set. The
// first member of a set is the original and is never a target.
package action

import (
	"fmt"
	"os"

	"github.com/MattiKrause/duplis/internal/domain"
)

// FileAction is a destructive consequence for a single duplicate.
type FileAction interface {
	// Apply consumes the duplicate. The original is guaranteed to exist
	// when Apply is called and may be shared across calls.
	Apply(dup, original *domain.FileEntry) error

	// Name is a short description like "delete", used in prompts and logs
	Name() string
}

// ActionFor maps a configured action kind to its implementation.
func ActionFor(kind domain.ActionKind) (FileAction, error) {
	switch kind {
	case domain.ActionDelete:
		return DeleteAction{}, nil
	case domain.ActionHardlink:
		return HardlinkAction{}, nil
	case domain.ActionSymlink:
		return SymlinkAction{}, nil
	default:
		return nil, fmt.Errorf("%w: no file action for %q", domain.ErrInvalidConfig, kind.String())
	}
}

// DeleteAction removes the duplicate's filesystem entry.
type DeleteAction struct{}

func (DeleteAction) Apply(dup, _ *domain.FileEntry) error {
	return os.Remove(dup.Path)
}

func (DeleteAction) Name() string { return "delete" }

// HardlinkAction removes the duplicate and hard-links its former path to the
// original. Both files must reside on the same device; the check runs before
// anything is removed so a cross-device pair is left untouched.
type HardlinkAction struct{}

func (HardlinkAction) Apply(dup, original *domain.FileEntry) error {
	if dup.Dev != original.Dev {
		return fmt.Errorf("cannot hardlink across devices: %s and %s", dup.Path, original.Path)
	}
	if err := os.Remove(dup.Path); err != nil {
		return err
	}
	if err := os.Link(original.Path, dup.Path); err != nil {
		return fmt.Errorf("duplicate removed but link creation failed: %w", err)
	}
	return nil
}

func (HardlinkAction) Name() string { return "replace with hardlink" }

// SymlinkAction removes the duplicate and creates a symlink at its former
// path pointing at the original's path.
type SymlinkAction struct{}

func (SymlinkAction) Apply(dup, original *domain.FileEntry) error {
	if err := os.Remove(dup.Path); err != nil {
		return err
	}
	if err := os.Symlink(original.Path, dup.Path); err != nil {
		return fmt.Errorf("duplicate removed but symlink creation failed: %w", err)
	}
	return nil
}

func (SymlinkAction) Name() string { return "replace with symlink" }
