package errors

import (
	"strings"
	"unicode"
)

// maxVenueIDLength bounds venue identifiers; they end up in URL paths,
// cache keys and file names.
const maxVenueIDLength = 128

// ValidateVenueID validates an opaque venue identifier for safety.
// It rejects identifiers that could be used for path traversal or that would
// break URL path segments.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateVenueID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidVenue, "venue id cannot be empty")
	}

	if len(id) > maxVenueIDLength {
		return New(ErrCodeInvalidVenue, "venue id too long (max %d characters)", maxVenueIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidVenue, "venue id contains whitespace or control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
		"?",    // Query string
		"#",    // Fragment
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidVenue, "venue id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateTableName validates a free-text table label. Names need not be
// unique and have no length limit; surfaces clip them when drawing. Only
// control characters are rejected.
func ValidateTableName(name string) error {
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTable, "table name contains control characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
