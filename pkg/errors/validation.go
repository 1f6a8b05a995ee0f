package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateKey validates a persistence key for safety and correctness.
// Keys end up as file names, Redis keys and database primary keys, so the
// rules are conservative:
//   - No empty keys
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 200 characters
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}

	if len(key) > 200 {
		return New(ErrCodeInvalidKey, "key too long (max 200 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidKey, "key contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// shapeNameRegex matches shape names as they appear in library manifests.
var shapeNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateShapeName validates a shape library name.
func ValidateShapeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "shape name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "shape name too long (max 128 characters)")
	}
	if !shapeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid shape name: %q", name)
	}
	return nil
}

// ValidateFileName validates a file name referenced from a library manifest.
// It ensures the name is a simple basename without path components.
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidManifest, "file name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidManifest, "file name cannot contain path separators")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidManifest, "file name cannot be a hidden file")
	}
	return nil
}
