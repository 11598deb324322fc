// Package config holds the run configuration and its validation. Only a
// configuration error is fatal: it is reported at startup, before any
// filesystem mutation has happened.
package config

import (
	"fmt"

	"github.com/MattiKrause/duplis/internal/domain"
	"github.com/MattiKrause/duplis/internal/filter"
)

// Options is the complete configuration of a run.
type Options struct {
	// Dirs are the search roots; ignored when ListInput is set
	Dirs []string

	// Recurse descends into subdirectories
	Recurse bool

	// FollowSymlinks resolves symlinks during traversal
	FollowSymlinks bool

	// ListInput means candidates come from an externally supplied
	// newline-delimited path list (stdin or a file) instead of walking
	// Dirs; the two are mutually exclusive
	ListInput bool

	// Filter holds all candidate filters
	Filter filter.Config

	// OrderBy names the ordering criteria, highest priority first
	OrderBy []string

	// Action, Confirm and ReportFormat select what happens to duplicates
	Action       domain.ActionKind
	Confirm      domain.ConfirmMode
	ReportFormat domain.ReportFormat

	// VerifyContent enables the byte-by-byte comparison that rules out
	// fingerprint collisions. Enabled by default: a collision must never
	// cause data loss.
	VerifyContent bool

	// VerifyPerms treats files with differing permission bits as distinct
	VerifyPerms bool

	// Workers is the fingerprint/verification worker count; 0 requests
	// the platform parallelism
	Workers int
}

// Default returns the options an empty command line implies.
func Default() Options {
	return Options{
		Dirs:          []string{"."},
		OrderBy:       []string{"modtime"},
		VerifyContent: true,
		VerifyPerms:   true,
		Workers:       1,
	}
}

// Validate checks the options for consistency.
func (o *Options) Validate() error {
	if o.ListInput && len(o.Dirs) > 0 {
		return fmt.Errorf("%w: both a directory list and a stdin candidate list were given", domain.ErrConflictingInput)
	}
	if !o.ListInput && len(o.Dirs) == 0 {
		return fmt.Errorf("%w: no search roots", domain.ErrInvalidConfig)
	}

	if len(o.Filter.ExtBlacklist) > 0 && len(o.Filter.ExtWhitelist) > 0 {
		return fmt.Errorf("%w: extension blacklist and whitelist are mutually exclusive", domain.ErrInvalidConfig)
	}
	if o.Filter.MinSize < 0 || o.Filter.MaxSize < 0 {
		return fmt.Errorf("%w: negative size filter", domain.ErrInvalidConfig)
	}
	if o.Filter.MaxSize > 0 && o.Filter.MinSize >= o.Filter.MaxSize {
		return fmt.Errorf("%w: minsize %d is not below maxsize %d", domain.ErrInvalidConfig, o.Filter.MinSize, o.Filter.MaxSize)
	}

	if o.Workers < 0 {
		return fmt.Errorf("%w: negative worker count", domain.ErrInvalidConfig)
	}

	if o.Confirm != domain.ConfirmOff && o.Action == domain.ActionNone {
		return fmt.Errorf("%w: %s", domain.ErrActionRequired, confirmName(o.Confirm))
	}
	if o.Confirm == domain.ConfirmOff && o.Action != domain.ActionNone {
		return fmt.Errorf("%w: action %q needs --immediate or --interactive", domain.ErrInvalidConfig, o.Action.String())
	}

	if _, err := o.OrderSpec(); err != nil {
		return err
	}
	return nil
}

// OrderSpec parses the configured criterion names.
func (o *Options) OrderSpec() (domain.OrderSpec, error) {
	if len(o.OrderBy) == 0 {
		return domain.DefaultOrderSpec(), nil
	}
	return domain.ParseOrderSpec(o.OrderBy)
}

func confirmName(mode domain.ConfirmMode) string {
	switch mode {
	case domain.ConfirmImmediate:
		return "--immediate"
	case domain.ConfirmInteractive:
		return "--interactive"
	default:
		return "report"
	}
}
