package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestStorageErrorMatching(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := StorageError{Op: "append", Err: cause}

	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected errors.Is to match ErrStorage")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected Unwrap to expose the cause")
	}
	if err.Error() != "storage append failed: disk full" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	wrapped := fmt.Errorf("handling request: %w", err)
	if !errors.Is(wrapped, ErrStorage) {
		t.Fatalf("expected match through wrapping")
	}
}

func TestNotFoundErrorMatching(t *testing.T) {
	err := NotFoundError{Resource: "export"}

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is to match ErrNotFound")
	}
	if err.Error() != "export not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if errors.Is(err, ErrStorage) {
		t.Fatalf("not-found must not match storage errors")
	}
}
