package config

import (
	"testing"

	"github.com/MattiKrause/duplis/internal/testutil"
)

// TestLoadMissingFileIsFine tests that the absence of a config file in the
// default locations is not an error
func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
}

// TestLoadExplicitMissingFileFails tests that an explicitly named file must
// exist
func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/duplis.yaml"); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

// TestLoadAndApply tests file values and their flag precedence
func TestLoadAndApply(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateTestFile(t, dir, "duplis.yaml", []byte(
		"workers: 4\norderby: [alphabetic]\nverify_content: false\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	opts := Default()
	cfg.Apply(&opts, func(string) bool { return false })

	if opts.Workers != 4 {
		t.Errorf("workers = %d, want 4", opts.Workers)
	}
	if len(opts.OrderBy) != 1 || opts.OrderBy[0] != "alphabetic" {
		t.Errorf("orderby = %v, want [alphabetic]", opts.OrderBy)
	}
	if opts.VerifyContent {
		t.Error("verify_content=false not applied")
	}
	if !opts.VerifyPerms {
		t.Error("unset file value should leave the default untouched")
	}
}

// TestApplySkipsChangedFlags tests that command-line flags win over the file
func TestApplySkipsChangedFlags(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateTestFile(t, dir, "duplis.yaml", []byte("workers: 4\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	opts := Default()
	opts.Workers = 8
	cfg.Apply(&opts, func(name string) bool { return name == "threads" })

	if opts.Workers != 8 {
		t.Errorf("workers = %d, want flag value 8", opts.Workers)
	}
}

// TestLoadMalformedFile tests that a syntactically broken file is an error
func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateTestFile(t, dir, "duplis.yaml", []byte("workers: [unclosed\n"))

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config file")
	}
}

// TestParsePathListFiles tests blacklist file parsing
func TestParsePathListFiles(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateTestFile(t, dir, "bl.txt", []byte("/skip/one\n\n/skip/two\n"))

	prefixes, err := ParsePathListFiles([]string{path})
	if err != nil {
		t.Fatalf("ParsePathListFiles failed: %v", err)
	}
	if len(prefixes) != 2 || prefixes[0] != "/skip/one" || prefixes[1] != "/skip/two" {
		t.Errorf("prefixes = %v, want [/skip/one /skip/two]", prefixes)
	}
}

// TestParsePathListFilesMissing tests that an unreadable blacklist file is
// fatal
func TestParsePathListFilesMissing(t *testing.T) {
	if _, err := ParsePathListFiles([]string{"/nonexistent/bl.txt"}); err == nil {
		t.Error("expected error for missing blacklist file")
	}
}
