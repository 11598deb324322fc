package logger

import "testing"

func restoreRouter(t *testing.T) {
	t.Helper()
	before := EnabledCategories()
	t.Cleanup(func() { SetEnabled(before) })
}

// TestAllCategoriesEnabledByDefault tests the router's initial state
func TestAllCategoriesEnabledByDefault(t *testing.T) {
	restoreRouter(t)

	for _, cat := range AllCategories() {
		if !Enabled(cat) {
			t.Errorf("category %s should start enabled", cat)
		}
	}
}

// TestSetEnabledReplacesSet tests that SetEnabled disables everything else
func TestSetEnabledReplacesSet(t *testing.T) {
	restoreRouter(t)

	SetEnabled([]Category{CatActionSuccess, CatFileErr})

	if !Enabled(CatActionSuccess) || !Enabled(CatFileErr) {
		t.Error("listed categories should be enabled")
	}
	if Enabled(CatConfigErr) || Enabled(CatFileDiscoveryErr) {
		t.Error("unlisted categories should be disabled")
	}
}

// TestToggle tests enabling and disabling a single category
func TestToggle(t *testing.T) {
	restoreRouter(t)

	Toggle(CatFileSetErr, false)
	if Enabled(CatFileSetErr) {
		t.Error("toggled-off category still enabled")
	}

	Toggle(CatFileSetErr, true)
	if !Enabled(CatFileSetErr) {
		t.Error("toggled-on category still disabled")
	}
}

// TestParseCategory tests category name parsing
func TestParseCategory(t *testing.T) {
	cat, err := ParseCategory("file_error")
	if err != nil || cat != CatFileErr {
		t.Errorf("ParseCategory(file_error) = %v, %v", cat, err)
	}

	cat, err = ParseCategory("Action_Success")
	if err != nil || cat != CatActionSuccess {
		t.Errorf("case-insensitive parse failed: %v, %v", cat, err)
	}

	if _, err := ParseCategory("bogus"); err == nil {
		t.Error("expected error for unknown category")
	}
}

// TestEventOnDisabledCategory tests that disabled events never reach the
// logger
func TestEventOnDisabledCategory(t *testing.T) {
	restoreRouter(t)

	Toggle(CatActionSuccess, false)
	// must not panic or log; the uninitialized global logger is a no-op
	Event(CatActionSuccess, "dropped")
	Event(CatFileErr, "delivered", "path", "/x")
}
