package clipview

import (
	"strings"
	"unicode/utf8"
)

// ValidateContent reports whether content may be stored in the history.
// It returns ErrEmptyContent for empty or whitespace-only text and
// ErrContentTooLong above MaxContentLength runes.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}
