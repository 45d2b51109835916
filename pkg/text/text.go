// Package text measures and strips strings that may carry ANSI escape
// sequences. Every width in nestbox is computed here so that borders, padding
// and content agree on what "visible" means.
package text

import (
	"github.com/charmbracelet/x/ansi"
)

// Strip removes every escape sequence from s.
func Strip(s string) string {
	return ansi.Strip(s)
}

// Length returns the number of terminal cells s occupies once escape
// sequences are ignored.
func Length(s string) int {
	return ansi.StringWidth(s)
}

// Head returns the first n visible runes of s.
func Head(s string, n int) string {
	r := []rune(Strip(s))
	if n >= len(r) {
		return string(r)
	}
	if n <= 0 {
		return ""
	}
	return string(r[:n])
}

// Tail returns the last n visible runes of s.
func Tail(s string, n int) string {
	r := []rune(Strip(s))
	if n >= len(r) {
		return string(r)
	}
	if n <= 0 {
		return ""
	}
	return string(r[len(r)-n:])
}
