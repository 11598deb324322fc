package logger

import (
	"fmt"
	"strings"
	"sync"
)

// Category names a diagnostic event class. Components never write log lines
// directly for per-entity events; they raise a category through the router,
// which drops disabled categories before they reach the logger.
type Category string

const (
	// CatUserInteractionErr - malformed or unavailable interactive input
	CatUserInteractionErr Category = "user_interaction_err"
	// CatFileFormatErr - malformed external content (blacklist files, report paths)
	CatFileFormatErr Category = "file_format_err"
	// CatConfigErr - invalid or conflicting configuration
	CatConfigErr Category = "config_err"
	// CatFatalActionFailure - an action failed for a single duplicate
	CatFatalActionFailure Category = "fatal_action_failure"
	// CatActionSuccess - an action was applied successfully
	CatActionSuccess Category = "action_success"
	// CatFileDiscoveryErr - a path could not be read during traversal
	CatFileDiscoveryErr Category = "file_discovery_err"
	// CatFileErr - a file could not be read during fingerprinting/verification
	CatFileErr Category = "file_error"
	// CatFileSetErr - a candidate group collapsed below two members
	CatFileSetErr Category = "file_set_err"
)

// AllCategories lists every diagnostic category.
func AllCategories() []Category {
	return []Category{
		CatUserInteractionErr,
		CatFileFormatErr,
		CatConfigErr,
		CatFatalActionFailure,
		CatActionSuccess,
		CatFileDiscoveryErr,
		CatFileErr,
		CatFileSetErr,
	}
}

// ParseCategory parses a category name (case-insensitive).
func ParseCategory(s string) (Category, error) {
	name := Category(strings.ToLower(s))
	for _, cat := range AllCategories() {
		if cat == name {
			return cat, nil
		}
	}
	return "", fmt.Errorf("unknown diagnostic category: %s", s)
}

var router = newRegistry()

// registry is the process-wide set of enabled diagnostic categories.
// All categories start enabled.
type registry struct {
	mu      sync.RWMutex
	enabled map[Category]bool
}

func newRegistry() *registry {
	r := &registry{enabled: make(map[Category]bool, 8)}
	for _, cat := range AllCategories() {
		r.enabled[cat] = true
	}
	return r
}

// Enabled reports whether a category is currently enabled.
func Enabled(cat Category) bool {
	router.mu.RLock()
	defer router.mu.RUnlock()
	return router.enabled[cat]
}

// SetEnabled replaces the enabled set with exactly the given categories.
func SetEnabled(cats []Category) {
	router.mu.Lock()
	defer router.mu.Unlock()
	for cat := range router.enabled {
		router.enabled[cat] = false
	}
	for _, cat := range cats {
		router.enabled[cat] = true
	}
}

// Toggle enables or disables a single category.
func Toggle(cat Category, on bool) {
	router.mu.Lock()
	defer router.mu.Unlock()
	router.enabled[cat] = on
}

// EnabledCategories returns the currently enabled categories.
func EnabledCategories() []Category {
	router.mu.RLock()
	defer router.mu.RUnlock()
	var cats []Category
	for _, cat := range AllCategories() {
		if router.enabled[cat] {
			cats = append(cats, cat)
		}
	}
	return cats
}

// Event raises a diagnostic event. Disabled categories are dropped; enabled
// ones are logged with a category attribute at a level matching the
// category's severity.
func Event(cat Category, msg string, args ...any) {
	if !Enabled(cat) {
		return
	}

	log := Get().With("category", string(cat))
	switch cat {
	case CatConfigErr, CatFatalActionFailure, CatUserInteractionErr:
		log.Error(msg, args...)
	case CatFileErr, CatFileFormatErr:
		log.Warn(msg, args...)
	case CatActionSuccess:
		log.Info(msg, args...)
	default:
		// discovery noise and collapsed sets are debug-level detail
		log.Debug(msg, args...)
	}
}
