package services_test

import (
	"errors"
	"strings"
	"testing"

	"greenlight/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransient, "tmdb", "search", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"tmdb", "search", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "cache", "save", "write failed", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIndeterminateClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transient", services.Wrap(services.ErrTransient, "tmdb", "search", "retries exhausted", nil), true},
		{"timeout", services.Wrap(services.ErrTimeout, "tmdb", "search", "deadline", nil), true},
		{"configuration", services.Wrap(services.ErrConfiguration, "tmdb", "search", "bad key", nil), false},
		{"validation", services.Wrap(services.ErrValidation, "check", "parse", "empty title", nil), false},
		{"untagged", errors.New("plain"), false},
	}
	for _, tc := range cases {
		if got := services.Indeterminate(tc.err); got != tc.want {
			t.Errorf("%s: Indeterminate = %v, want %v", tc.name, got, tc.want)
		}
	}
}
