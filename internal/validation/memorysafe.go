package validation

import "unicode/utf8"

// InputField is one named value for ValidateInputBatch
type InputField struct {
	Name   string
	Value  string
	MaxLen int
}

// ValidateInputBatch checks inputs in order and returns the first failure,
// so the reported field is deterministic.
func ValidateInputBatch(inputs []InputField) (*InputField, error) {
	for i := range inputs {
		if err := ValidateFieldSecurity(inputs[i].Value, inputs[i].Name, inputs[i].MaxLen); err != nil {
			return &inputs[i], err
		}
	}
	return nil, nil
}

// TruncateString cuts s to at most maxLen bytes without splitting a rune
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
