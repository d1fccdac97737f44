package types

import (
	"regexp"
)

var decimalRegex = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// Uint64Ptr converts a uint64 to a pointer to a uint64
func Uint64Ptr(v uint64) *uint64 {
	return &v
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsDecimal checks if a string is a non-negative base 10 integer without leading zeros
func IsDecimal(s string) bool {
	return decimalRegex.MatchString(s)
}

// NumericOrZero returns s when it is a decimal integer, "0" otherwise.
// Used for numeric(78,0) columns which reject empty strings.
func NumericOrZero(s string) string {
	if !IsDecimal(s) {
		return "0"
	}
	return s
}
