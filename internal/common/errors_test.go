package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_IsSentinel(t *testing.T) {
	var ve ValidationError
	ve.Add("email", "must be a valid email address")

	if !errors.Is(&ve, ErrorValidation) {
		t.Fatalf("expected ValidationError to match ErrorValidation")
	}
}

func TestValidationError_Message(t *testing.T) {
	var ve ValidationError
	ve.Add("username", "must not be empty").Add("password", "too short")

	want := "validation failed: username: must not be empty; password: too short"
	if got := ve.Error(); got != want {
		t.Fatalf("unexpected message: got %q want %q", got, want)
	}
}

func TestValidationError_OrNil(t *testing.T) {
	var ve ValidationError
	if err := ve.OrNil(); err != nil {
		t.Fatalf("expected nil for empty ValidationError, got %v", err)
	}

	ve.Add("bookId", "required")
	if err := ve.OrNil(); err == nil {
		t.Fatalf("expected non-nil after Add")
	}
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("saving book: %w", ErrorUnauthenticated)
	if !errors.Is(wrapped, ErrorUnauthenticated) {
		t.Fatalf("wrapped sentinel not matched")
	}
}
