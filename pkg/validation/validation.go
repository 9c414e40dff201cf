package validation

import (
	"fmt"

	"github.com/lexibel/lexctl/pkg/hasher"
)

const (
	MinThreads = 1
	MaxThreads = 20
)

func ValidateThreadCount(threads int) error {
	if threads < MinThreads || threads > MaxThreads {
		return fmt.Errorf("thread count must be between %d and %d, got %d", MinThreads, MaxThreads, threads)
	}
	return nil
}

func ValidateCaseID(id string) error {
	if id == "" {
		return fmt.Errorf("case ID cannot be empty")
	}
	return nil
}

func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

func ValidateHashAlgo(algo string) error {
	if !hasher.IsValidHashAlgo(algo) {
		return fmt.Errorf("unsupported hash algorithm: %s (must be one of: md5, sha1, sha256, sha512)", algo)
	}
	return nil
}

func ValidateExportFormat(format string) error {
	if format != "json" && format != "csv" {
		return fmt.Errorf("invalid export format: %s (must be one of: json, csv)", format)
	}
	return nil
}
