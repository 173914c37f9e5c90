package services_test

import (
	"context"
	"testing"

	"greenlight/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Error("unexpected run ID on empty context")
	}

	ctx = services.WithRunID(ctx, "run-42")
	ctx = services.WithTitle(ctx, "Juno")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-42" {
		t.Errorf("RunIDFromContext = %q, %v", id, ok)
	}
	if title, ok := services.TitleFromContext(ctx); !ok || title != "Juno" {
		t.Errorf("TitleFromContext = %q, %v", title, ok)
	}
}

func TestContextHelpersIgnoreEmptyValues(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "")
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Error("empty run ID should not be stored")
	}
	ctx = services.WithTitle(ctx, "")
	if _, ok := services.TitleFromContext(ctx); ok {
		t.Error("empty title should not be stored")
	}
}
