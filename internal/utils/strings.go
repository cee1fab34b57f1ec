package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SafePathPart encodes a caller-supplied value (a phone number) as one object path
// segment. Digits, '+' and '-' are kept and every other byte becomes "_XX" (hex), so
// distinct inputs never share a segment. Empty input becomes "unknown", which no
// other input can produce because letters are always encoded.
func SafePathPart(s string) string {
	if s == "" {
		return "unknown"
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '+' || c == '-' {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "_%02X", c)
	}
	return b.String()
}

// SafeFilename keeps only the base name of an uploaded file, with whitespace runs
// turned into "_" and control characters dropped.
func SafeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "/" {
		base = ""
	}
	base = strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, NormalizeSpace(base))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" || base == "." || base == ".." {
		return "unknown"
	}
	return base
}
