package utils

import (
	"unicode/utf8"
)

// IsBinary reports whether the provided byte slice appears to contain binary data:
// either invalid UTF-8 or a NUL byte.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}
