package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxNetNameLength is the longest net name accepted in a tuning request.
const MaxNetNameLength = 256

// ValidateNetName validates a net name for safety and correctness.
// Net names end up in cache keys, job records and file names, so the rules
// are conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators
//   - Maximum length of MaxNetNameLength characters
func ValidateNetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "net name cannot be empty")
	}

	if len(name) > MaxNetNameLength {
		return New(ErrCodeInvalidInput, "net name too long (max %d characters)", MaxNetNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "net name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "net name cannot contain path separators: %q", name)
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
