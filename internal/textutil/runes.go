// Package textutil provides character-indexed windows over UTF-8 text.
//
// Header windows and summary slices are measured in characters rather than
// bytes, so judgments containing non-ASCII punctuation (curly quotes, the
// rupee sign, Devanagari names) are windowed the same way as plain ASCII.
package textutil

import "unicode/utf8"

// Len returns the number of characters in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Slice returns characters [from, to) of s. Bounds are clamped to the text,
// so out-of-range or inverted windows yield a shorter or empty string.
func Slice(s string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to <= from {
		return ""
	}
	start, end := -1, len(s)
	i := 0
	for pos := range s {
		if i == from {
			start = pos
		}
		if i == to {
			end = pos
			break
		}
		i++
	}
	if start < 0 {
		return ""
	}
	return s[start:end]
}

// Head returns the first n characters of s.
func Head(s string, n int) string {
	if n >= len(s) {
		return s
	}
	return Slice(s, 0, n)
}

// Tail returns the last n characters of s.
func Tail(s string, n int) string {
	total := Len(s)
	if n >= total {
		return s
	}
	return Slice(s, total-n, total)
}

// CharOffset converts a byte offset into s to a character offset.
func CharOffset(s string, byteOffset int) int {
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	return utf8.RuneCountInString(s[:byteOffset])
}

// ByteOffset converts a character offset into s to a byte offset, clamped to len(s).
func ByteOffset(s string, charOffset int) int {
	i := 0
	for pos := range s {
		if i == charOffset {
			return pos
		}
		i++
	}
	return len(s)
}
