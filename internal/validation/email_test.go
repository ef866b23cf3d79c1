package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		expected bool
	}{
		{name: "simple", value: "a@b.co", expected: true},
		{name: "plus and dots", value: "first.last+tag@sub.example.com", expected: true},
		{name: "percent and dash", value: "user%x-y@ex-ample.org", expected: true},
		{name: "empty", value: "", expected: false},
		{name: "nil", value: nil, expected: false},
		{name: "integer", value: 42, expected: false},
		{name: "byte slice", value: []byte("a@b.co"), expected: false},
		{name: "missing at", value: "not-an-email", expected: false},
		{name: "missing local part", value: "@example.com", expected: false},
		{name: "missing tld", value: "user@example", expected: false},
		{name: "one letter tld", value: "user@example.c", expected: false},
		{name: "numeric tld", value: "user@example.123", expected: false},
		{name: "two at signs", value: "a@b@c.com", expected: false},
		{name: "space inside", value: "a b@c.com", expected: false},
		{name: "trailing newline", value: "a@b.co\n", expected: false},
		{name: "unicode local part", value: "josé@example.com", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsValidEmail(tc.value))
		})
	}
}

func TestIsValidEmailPointerIsNotString(t *testing.T) {
	s := "a@b.co"
	assert.False(t, IsValidEmail(&s))
}
