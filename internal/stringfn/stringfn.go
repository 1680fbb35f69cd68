// Package stringfn implements the string-function catalog spec.md §6
// lists as a surface-level library ("concat length upper lower trim
// trim_start trim_end starts_with ends_with replace split join pad_start
// pad_end"). Grounded on the teacher's internal/interp/builtins string
// functions: plain Go-typed helpers that a builtin dispatcher type-checks
// Values into and calls, rather than a single function that both
// type-checks and computes.
package stringfn

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Concat joins every argument with no separator.
func Concat(parts ...string) string {
	return strings.Join(parts, "")
}

// Length returns the number of runes in s (not bytes), matching the
// teacher's rune-aware string handling elsewhere in the lexer.
func Length(s string) int {
	return len([]rune(s))
}

var upper = cases.Upper(language.Und)
var lower = cases.Lower(language.Und)

// Upper and Lower use golang.org/x/text/cases for locale-aware casing
// instead of strings.ToUpper/ToLower's ASCII-biased simple case folding.
func Upper(s string) string { return upper.String(s) }
func Lower(s string) string { return lower.String(s) }

func Trim(s string) string      { return strings.TrimSpace(s) }
func TrimStart(s string) string { return strings.TrimLeft(s, " \t\n\r") }
func TrimEnd(s string) string   { return strings.TrimRight(s, " \t\n\r") }

func StartsWith(s, prefix string) bool { return strings.HasPrefix(s, prefix) }
func EndsWith(s, suffix string) bool   { return strings.HasSuffix(s, suffix) }

// Replace replaces every occurrence of old with new.
func Replace(s, old, new string) string {
	return strings.ReplaceAll(s, old, new)
}

func Split(s, sep string) []string {
	return strings.Split(s, sep)
}

func Join(parts []string, sep string) string {
	return strings.Join(parts, sep)
}

// PadStart and PadEnd pad s with pad (a single rune's worth of text,
// repeated) until it reaches at least width runes.
func PadStart(s string, width int, pad string) string {
	return padTo(s, width, pad, true)
}

func PadEnd(s string, width int, pad string) string {
	return padTo(s, width, pad, false)
}

func padTo(s string, width int, pad string, start bool) string {
	if pad == "" {
		return s
	}
	deficit := width - Length(s)
	if deficit <= 0 {
		return s
	}
	padRunes := []rune(pad)
	var b strings.Builder
	for b.Len() == 0 || len([]rune(b.String())) < deficit {
		b.WriteString(pad)
	}
	filler := []rune(b.String())[:deficit]
	_ = padRunes
	if start {
		return string(filler) + s
	}
	return s + string(filler)
}
