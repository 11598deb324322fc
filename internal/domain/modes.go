package domain

import (
	"fmt"
	"strings"
)

// OrderCriterion names a single ordering criterion for duplicate sets.
type OrderCriterion int

const (
	// OrderModTime orders from least to most recently modified
	OrderModTime OrderCriterion = iota
	// OrderCreateTime orders from oldest to newest creation time
	OrderCreateTime
	// OrderAlphabetic orders by path, ascending
	OrderAlphabetic
	// OrderAsIs imposes no order; classifier output order is kept and is
	// explicitly non-deterministic
	OrderAsIs
)

// OrderTerm is one criterion of a composite ordering, optionally reversed.
type OrderTerm struct {
	Criterion OrderCriterion
	Reversed  bool
}

// OrderSpec is a composite ordering: terms in decreasing priority.
// The minimal element under the combined comparator becomes the original.
type OrderSpec []OrderTerm

// ParseOrderTerm parses a single criterion name. An "r" prefix reverses the
// criterion (rmodtime); as_is cannot be reversed.
func ParseOrderTerm(name string) (OrderTerm, error) {
	switch strings.ToLower(name) {
	case "modtime":
		return OrderTerm{Criterion: OrderModTime}, nil
	case "rmodtime":
		return OrderTerm{Criterion: OrderModTime, Reversed: true}, nil
	case "createtime":
		return OrderTerm{Criterion: OrderCreateTime}, nil
	case "rcreatetime":
		return OrderTerm{Criterion: OrderCreateTime, Reversed: true}, nil
	case "alphabetic":
		return OrderTerm{Criterion: OrderAlphabetic}, nil
	case "ralphabetic":
		return OrderTerm{Criterion: OrderAlphabetic, Reversed: true}, nil
	case "as_is":
		return OrderTerm{Criterion: OrderAsIs}, nil
	default:
		return OrderTerm{}, fmt.Errorf("%w: unknown ordering criterion: %s", ErrInvalidConfig, name)
	}
}

// ParseOrderSpec parses a comma-joined list of criterion names.
func ParseOrderSpec(names []string) (OrderSpec, error) {
	spec := make(OrderSpec, 0, len(names))
	for _, name := range names {
		term, err := ParseOrderTerm(name)
		if err != nil {
			return nil, err
		}
		spec = append(spec, term)
	}
	return spec, nil
}

// DefaultOrderSpec orders by modification time, oldest first.
func DefaultOrderSpec() OrderSpec {
	return OrderSpec{{Criterion: OrderModTime}}
}

// ActionKind names the destructive action applied to duplicates.
type ActionKind int

const (
	// ActionNone means report only, never mutate
	ActionNone ActionKind = iota
	// ActionDelete removes the duplicate
	ActionDelete
	// ActionHardlink replaces the duplicate with a hard link to the original
	ActionHardlink
	// ActionSymlink replaces the duplicate with a symlink to the original
	ActionSymlink
)

// String returns the action name as used on the command line.
func (a ActionKind) String() string {
	switch a {
	case ActionDelete:
		return "delete"
	case ActionHardlink:
		return "replace with hardlink"
	case ActionSymlink:
		return "replace with symlink"
	default:
		return "report"
	}
}

// ConfirmMode selects how an action is confirmed before it is applied.
type ConfirmMode int

const (
	// ConfirmOff means no action is executed (dry run / report)
	ConfirmOff ConfirmMode = iota
	// ConfirmImmediate applies the action without prompting
	ConfirmImmediate
	// ConfirmInteractive prompts per duplicate before applying
	ConfirmInteractive
)

// ReportFormat selects the machine-readable report layout.
type ReportFormat int

const (
	// ReportHuman is the default dry-run line, one set per line
	ReportHuman ReportFormat = iota
	// ReportPairwise prints one "original,duplicate" line per duplicate
	ReportPairwise
	// ReportSetwise prints one comma-joined line per set
	ReportSetwise
)

// ParseReportFormat parses a --wout value.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch strings.ToLower(s) {
	case "pairwise":
		return ReportPairwise, nil
	case "setwise":
		return ReportSetwise, nil
	default:
		return ReportHuman, fmt.Errorf("%w: unknown report format: %s", ErrInvalidConfig, s)
	}
}
