package model

import "strings"

type Chord struct {
	Label      string
	Duration   int
	Diminished bool

	// the bar right after this chord was a dotted (partial) bar
	BrokenBar bool
}

// Root returns the label with any wrapping parentheses removed, so "(G)"
// and "G" name the same harmony.
func (c *Chord) Root() string {
	return strings.TrimSuffix(strings.TrimPrefix(c.Label, "("), ")")
}

// Optional reports whether the chord is an alternate written in parentheses.
func (c *Chord) Optional() bool {
	return strings.HasPrefix(c.Label, "(")
}
