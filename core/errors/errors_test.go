package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		expected string
	}{
		{
			name:     "with name",
			err:      NewNotFound("document", "guide/intro"),
			expected: "document not found: guide/intro",
		},
		{
			name:     "without name",
			err:      &NotFoundError{Resource: "label"},
			expected: "label not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
			if !errors.Is(tt.err, ErrNotFound) {
				t.Error("NotFoundError should unwrap to ErrNotFound")
			}
		})
	}
}

func TestNoURIError(t *testing.T) {
	err := NewNoURI("guide/index", "api/reference", "single-file output")
	expected := "no destination URI from guide/index to api/reference: single-file output"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
	if !errors.Is(err, ErrNoURI) {
		t.Error("NoURIError should unwrap to ErrNoURI")
	}

	// Without a reason
	err = NewNoURI("a", "b", "")
	expected = "no destination URI from a to b"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestNoURIErrorThroughWrapping(t *testing.T) {
	// A wrapped NoURIError must still be detectable with errors.Is;
	// the resolution pass relies on this to fall back silently.
	inner := NewNoURI("guide/index", "api/reference", "")
	wrapped := fmt.Errorf("building link: %w", inner)
	if !errors.Is(wrapped, ErrNoURI) {
		t.Error("wrapped NoURIError should satisfy errors.Is(err, ErrNoURI)")
	}

	var nerr *NoURIError
	if !errors.As(wrapped, &nerr) {
		t.Fatal("errors.As failed to recover NoURIError")
	}
	if nerr.ToDoc != "api/reference" {
		t.Errorf("ToDoc = %q, want %q", nerr.ToDoc, "api/reference")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation("target", "empty reference target")
	expected := "validation failed for target: empty reference target"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should unwrap to ErrInvalidInput")
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("XML", "tree.xml", "unexpected EOF")
	expected := "failed to parse XML at tree.xml: unexpected EOF"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}

	err = NewParse("target", "", "unbalanced backticks")
	expected = "failed to parse target: unbalanced backticks"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := Wrap(base, "context")
	if wrapped.Error() != "context: base" {
		t.Errorf("Wrap() = %q, want %q", wrapped.Error(), "context: base")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := Wrapf(base, "document %q", "guide/index")
	expected := `document "guide/index": base`
	if wrapped.Error() != expected {
		t.Errorf("Wrapf() = %q, want %q", wrapped.Error(), expected)
	}
}
