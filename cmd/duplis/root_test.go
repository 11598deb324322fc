package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/MattiKrause/duplis/internal/domain"
)

// TestConfigErrorSurfacesOnce tests that a configuration error is reported
// through the returned error alone and printed a single time
func TestConfigErrorSurfacesOnce(t *testing.T) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--immediate"})

	err := cmd.Execute()
	if !errors.Is(err, domain.ErrActionRequired) {
		t.Fatalf("expected ErrActionRequired, got %v", err)
	}
	if got := strings.Count(errOut.String(), "requires a file action"); got != 1 {
		t.Errorf("error printed %d times, want 1: %q", got, errOut.String())
	}
}

// TestConflictingActionFlags tests that two file actions are rejected
func TestConflictingActionFlags(t *testing.T) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--delete", "--resymlink", "--immediate"})

	if err := cmd.Execute(); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
