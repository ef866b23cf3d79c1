package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxFilterLength is the byte limit for a free-text lookup filter
const MaxFilterLength = 255

// Security validation errors
var (
	ErrInvalidUnicodeSecurity = errors.New("ErrInvalidUnicodeSecurity")
	ErrInvalidUnicodeCategory = errors.New("ErrInvalidUnicodeCategory")
	ErrFieldTooLong           = errors.New("ErrFieldTooLong")
	ErrInvalidUTF8            = errors.New("ErrInvalidUTF8")
)

// Blocked Unicode categories for security
var blockedCategories = []*unicode.RangeTable{
	unicode.Cc, // Control characters
	unicode.Cf, // Format characters (zero-width, etc.)
	unicode.Cs, // Surrogate characters
	unicode.Co, // Private use characters
}

// Control characters rejected before normalization
var dangerousRunes = []rune{
	0x0000, // NULL
	0x0008, // BACKSPACE
	0x000B, // VERTICAL TAB
	0x000C, // FORM FEED
	0x001A, // SUBSTITUTE
	0x001B, // ESCAPE
	0x007F, // DELETE
}

// ValidateUnicodeSecurity rejects control, format, surrogate and private use
// characters, including ones that only appear after NFKC normalization.
// Input that is not valid UTF-8 is rejected outright.
func ValidateUnicodeSecurity(input string) error {
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}

	for _, dangerous := range dangerousRunes {
		if strings.ContainsRune(input, dangerous) {
			return ErrInvalidUnicodeSecurity
		}
	}

	normalized := norm.NFKC.String(input)
	for _, r := range normalized {
		if unicode.IsOneOf(blockedCategories, r) {
			return ErrInvalidUnicodeCategory
		}
	}

	return nil
}

// ValidateFieldSecurity validates a single field with length and security checks
func ValidateFieldSecurity(field, fieldName string, maxLen int) error {
	if len(field) > maxLen {
		return fmt.Errorf("field %s exceeds maximum length of %d bytes: %w", fieldName, maxLen, ErrFieldTooLong)
	}

	if err := ValidateUnicodeSecurity(field); err != nil {
		return fmt.Errorf("unicode security validation failed for field %s: %w", fieldName, err)
	}

	return nil
}
