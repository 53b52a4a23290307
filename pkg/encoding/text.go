// Package encoding provides text encoding utilities for photometric and catalog files.
package encoding

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const utf8BOM = "\uFEFF"

// DecodeText converts raw file bytes to a UTF-8 string.
// Valid UTF-8 is kept, a byte order mark selects UTF-8 or UTF-16, and anything
// else is read as Windows-1252, which is what most luminaire export tools write.
// Returns the original bytes as a string if conversion fails.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return TrimNullString(strings.TrimPrefix(string(data), utf8BOM))
	}

	decoder := unicode.BOMOverride(charmap.Windows1252.NewDecoder())
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return TrimNullString(strings.TrimPrefix(string(result), utf8BOM))
}

// NormalizePath converts Windows separators in a catalog path to forward slashes.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// TrimNullString removes trailing null characters left by fixed-size export buffers.
func TrimNullString(s string) string {
	return strings.TrimRight(s, "\x00")
}
