// Package testutil provides shared test helpers for the script packages.
package testutil

import (
	"errors"
	"strings"
	"testing"
)

// Error represents any error type with a GetError method.
type Error interface {
	GetError() string
}

// AssertNoErrors fails the test if errors slice is not empty.
func AssertNoErrors[E Error](t *testing.T, errs []E) {
	t.Helper()
	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %d: %v", len(errs), errs)
	}
}

// AssertErrorCount fails if error count doesn't match expected.
func AssertErrorCount[E Error](t *testing.T, errs []E, expected int) {
	t.Helper()
	if len(errs) != expected {
		t.Fatalf("Expected %d errors, got %d: %v", expected, len(errs), errs)
	}
}

// AssertErrorContains fails if no error contains the expected substring.
// Matching is case-sensitive.
func AssertErrorContains[E Error](t *testing.T, errs []E, expected string) {
	t.Helper()
	if !HasErrorContaining(errs, expected) {
		t.Errorf("Expected error containing %q, got: %v", expected, errs)
	}
}

// HasErrorContaining returns true if any error contains the expected substring.
func HasErrorContaining[E Error](errs []E, expected string) bool {
	for _, err := range errs {
		if strings.Contains(err.GetError(), expected) {
			return true
		}
	}
	return false
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("Expected error matching %q, got: %v", target, err)
	}
}
