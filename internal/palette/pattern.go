package palette

import (
	"errors"
	"strings"
)

// ErrEmptyPattern is returned when no usable colour remains in the pattern.
var ErrEmptyPattern = errors.New("color pattern is invalid")

// Warning is a non-fatal diagnostic raised while sanitising a pattern.
type Warning string

const (
	WarnExtraColors       Warning = "Color Pattern: Extra colors are ignored!"
	WarnInvalidCharacters Warning = "Color Pattern: Invalid characters were removed!"
)

// PatternResult is the outcome of SanitizePattern.
type PatternResult struct {
	// Pattern is the sequence of colour ids used for generation.
	Pattern string
	// Stored is the digits-only text to write back to configuration.
	Stored   string
	Warnings []Warning
}

// Empty reports whether no colour ids survived sanitisation.
func (r PatternResult) Empty() bool {
	return len(r.Pattern) == 0
}

// SanitizePattern strips raw down to colour ids '1'..'<colorCount>'.
//
// The first pass keeps only the characters '1'..'9'; its result is what gets
// persisted. The second pass drops ids beyond colorCount. Extra ids raise
// WarnExtraColors, anything other than '1'..'9' in raw raises
// WarnInvalidCharacters. colorCount is clamped to 1..9.
func SanitizePattern(raw string, colorCount int) PatternResult {
	if colorCount < 1 {
		colorCount = 1
	}
	if colorCount > MaxColors {
		colorCount = MaxColors
	}

	stored := keepRange(raw, '9')
	pattern := keepRange(stored, byte('0'+colorCount))

	var warnings []Warning
	if pattern != stored {
		warnings = append(warnings, WarnExtraColors)
	}
	if raw != stored {
		warnings = append(warnings, WarnInvalidCharacters)
	}

	return PatternResult{Pattern: pattern, Stored: stored, Warnings: warnings}
}

// keepRange removes every byte outside '1'..hi.
func keepRange(s string, hi byte) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '1' && c <= hi {
			b.WriteByte(c)
		}
	}
	return b.String()
}
