package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidTable, "capacity must be positive, got %d", 0)
	if got, want := err.Error(), "INVALID_TABLE: capacity must be positive, got 0"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("connection refused")
	wrapped := Wrap(ErrCodeNetwork, cause, "load layout for %s", "jazz")
	if got, want := wrapped.Error(), "NETWORK_ERROR: load layout for jazz: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, cause) || errors.Unwrap(wrapped) != cause {
		t.Error("Wrap() should keep the cause in the chain")
	}
}

func TestCodeLookup(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{"coded", New(ErrCodeInvalidVenue, "venue id cannot be empty"), ErrCodeInvalidVenue, "venue id cannot be empty"},
		{"outermost wins", Wrap(ErrCodeStore, New(ErrCodeTimeout, "inner"), "save"), ErrCodeStore, "save"},
		{"behind fmt wrap", fmt.Errorf("edit: %w", New(ErrCodeInvalidGeometry, "too small")), ErrCodeInvalidGeometry, "too small"},
		{"plain", errors.New("plain error"), "", "plain error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
		})
	}

	if Is(nil, ErrCodeNotFound) || GetCode(nil) != "" {
		t.Error("nil error has no code")
	}
	if Is(errors.New("x"), "") {
		t.Error("Is() with an empty code should be false")
	}
}

func TestCategories(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		invalid     bool
		persistence bool
	}{
		{"network", New(ErrCodeNetwork, "down"), false, true},
		{"timeout", New(ErrCodeTimeout, "slow"), false, true},
		{"store", Wrap(ErrCodeStore, errors.New("disk full"), "save"), false, true},
		{"table", New(ErrCodeInvalidTable, "bad"), true, false},
		{"config", New(ErrCodeInvalidConfig, "bad"), true, false},
		{"not found", New(ErrCodeNotFound, "gone"), false, false},
		{"plain", errors.New("plain"), false, false},
		{"nil", nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInvalid(tt.err); got != tt.invalid {
				t.Errorf("IsInvalid() = %v, want %v", got, tt.invalid)
			}
			if got := IsPersistence(tt.err); got != tt.persistence {
				t.Errorf("IsPersistence() = %v, want %v", got, tt.persistence)
			}
		})
	}
}
