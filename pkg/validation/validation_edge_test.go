package validation

import (
	"strings"
	"testing"
)

func TestValidateThreadCount_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		threads int
		wantErr bool
	}{
		{"zero threads", 0, true},
		{"negative threads", -1, true},
		{"minimum valid", 1, false},
		{"normal value", 5, false},
		{"maximum valid", 20, false},
		{"above maximum", 21, true},
		{"way above maximum", 100, true},
		{"very negative", -999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThreadCount(tt.threads)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThreadCount(%d) error = %v, wantErr %v", tt.threads, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "thread") {
				t.Errorf("Error message should mention 'thread': %v", err)
			}
		})
	}
}

func TestValidateNonEmptyString_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"normal string", "test", false},
		{"empty string", "", true},
		{"single space", " ", false},          // Only checks empty, not whitespace
		{"multiple spaces", "   ", false},     // Only checks empty
		{"tab", "\t", false},                  // Only checks empty
		{"newline", "\n", false},              // Only checks empty
		{"mixed whitespace", " \t\n ", false}, // Only checks empty
		{"string with leading space", " test", false},
		{"string with internal space", "test string", false},
		{"single char", "a", false},
		{"unicode", "è-référence", false},
		{"very long string", strings.Repeat("a", 10000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonEmptyString("test field", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonEmptyString(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "test field") {
				t.Errorf("Error message should mention field name: %v", err)
			}
		})
	}
}

func TestValidateNonEmptyString_FieldNames(t *testing.T) {
	tests := []struct {
		fieldName string
	}{
		{"email"},
		{"password"},
		{"case title"},
		{"file path"},
		{""}, // Empty field name
	}

	for _, tt := range tests {
		t.Run(tt.fieldName, func(t *testing.T) {
			err := ValidateNonEmptyString(tt.fieldName, "")
			if err == nil {
				t.Error("Expected error for empty string")
				return
			}
			if tt.fieldName != "" && !strings.Contains(err.Error(), tt.fieldName) {
				t.Errorf("Error message should contain field name %q: %v", tt.fieldName, err)
			}
		})
	}
}

func TestValidateExportFormat_CaseSensitivity(t *testing.T) {
	// Only lowercase format names are valid.
	formats := []string{"json", "csv"}

	for _, format := range formats {
		if err := ValidateExportFormat(format); err != nil {
			t.Errorf("Lowercase %q should be valid: %v", format, err)
		}
		upper := strings.ToUpper(format)
		if err := ValidateExportFormat(upper); err == nil {
			t.Errorf("Uppercase %q should be INVALID (case-sensitive)", upper)
		}
	}
}

func TestValidateHashAlgo_CaseInsensitivity(t *testing.T) {
	// Algorithm names are matched case-insensitively.
	algos := []string{"md5", "sha1", "sha256", "sha512"}

	for _, algo := range algos {
		if err := ValidateHashAlgo(algo); err != nil {
			t.Errorf("Lowercase %q should be valid: %v", algo, err)
		}
		if err := ValidateHashAlgo(strings.ToUpper(algo)); err != nil {
			t.Errorf("Uppercase %q should be valid: %v", strings.ToUpper(algo), err)
		}
	}
}

func TestValidation_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		validate func() error
		wantIn   []string
	}{
		{
			name:     "case ID error mentions case",
			validate: func() error { return ValidateCaseID("") },
			wantIn:   []string{"case", "ID"},
		},
		{
			name:     "thread count error mentions range",
			validate: func() error { return ValidateThreadCount(100) },
			wantIn:   []string{"thread"},
		},
		{
			name:     "export format error mentions format",
			validate: func() error { return ValidateExportFormat("invalid") },
			wantIn:   []string{"format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate()
			if err == nil {
				t.Error("Expected error")
				return
			}

			errMsg := strings.ToLower(err.Error())
			for _, want := range tt.wantIn {
				if !strings.Contains(errMsg, strings.ToLower(want)) {
					t.Errorf("Error message should contain %q: %v", want, err)
				}
			}
		})
	}
}

func TestValidation_ConcurrentAccess(t *testing.T) {
	done := make(chan bool)

	for i := 0; i < 100; i++ {
		go func(id int) {
			ValidateCaseID("c-1")
			ValidateThreadCount(id % 21)
			ValidateExportFormat("json")
			ValidateNonEmptyString("test", "field")
			done <- true
		}(i)
	}

	for i := 0; i < 100; i++ {
		<-done
	}
	// Should not panic or race
}
