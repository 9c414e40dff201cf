package clierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain message", New(Validation, "case ID cannot be empty", nil), "case ID cannot be empty"},
		{"cause does not leak into message", New(Download, "download failed", errors.New("connection reset")), "download failed"},
		{"empty message", New(Internal, "", nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("sql: no rows")
	err := New(NotFound, "no case found", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is must reach the wrapped cause")
	}
	if got := New(Validation, "standalone", nil).Unwrap(); got != nil {
		t.Errorf("Unwrap() without a cause = %v, want nil", got)
	}
}

func TestErrorsAsRecoversType(t *testing.T) {
	wrapped := fmt.Errorf("while downloading: %w", New(Download, "3 of 5 documents failed", errors.New("timeout")))

	var cerr *Error
	if !errors.As(wrapped, &cerr) {
		t.Fatal("errors.As must find the typed error inside a wrap chain")
	}
	if cerr.Type != Download {
		t.Errorf("Type = %v, want %v", cerr.Type, Download)
	}
}

func TestNewKeepsAllFields(t *testing.T) {
	cause := errors.New("disk full")
	err := New(Internal, "failed to write the export file", cause)

	if err.Type != Internal {
		t.Errorf("Type = %v, want %v", err.Type, Internal)
	}
	if err.Message != "failed to write the export file" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Err != cause {
		t.Errorf("Err = %v, want %v", err.Err, cause)
	}
}

func TestTypeConstants(t *testing.T) {
	want := map[Type]string{
		Validation: "validation",
		NotFound:   "not_found",
		Download:   "download",
		Internal:   "internal",
	}
	for typ, s := range want {
		if string(typ) != s {
			t.Errorf("constant %v = %q, want %q", typ, string(typ), s)
		}
	}
}
