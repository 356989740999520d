package domain

import (
	"strings"
	"unicode/utf8"
)

// CheckName rejects names that are blank or not valid UTF-8. JSON encoding
// rewrites invalid bytes to U+FFFD, so such names would not survive storage.
func CheckName(name string) error {
	if strings.TrimSpace(name) == "" || !utf8.ValidString(name) {
		return ErrInvalidName
	}
	return nil
}
