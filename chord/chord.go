package chord

import (
	"strings"

	"github.com/jsphweid/chordchart/constants"
	"github.com/jsphweid/chordchart/model"
)

// annotations starting with one of these are placed text, not chords
const placementPrefixes = "?@<>^_$"

// punctuation that survives cleaning
const keptPunct = "#-()/>."

// Canonicalize cleans a raw chord-guide annotation into a chord label. An
// empty label means the text did not look like a chord.
func Canonicalize(raw string) (string, bool) {
	buf := stripWhitespace(raw)
	buf = stripPunct(buf)
	buf = stripOr(buf)
	buf = stripLongParenthetical(buf)

	buf, ok := foldSuffix(buf)
	if !ok {
		return "", false
	}

	if i := strings.Index(buf, "dim"); i >= 0 {
		return buf[:i] + constants.DiminishedMarker + buf[i+3:], true
	}
	return buf, false
}

// Name combines the annotations of one event into a single label. Repeat
// markers are reported separately and never contribute to the label.
func Name(annotations []model.Annotation) (label string, diminished bool, repeat bool) {
	var parts []string
	for _, a := range annotations {
		if a.Repeat {
			repeat = true
			continue
		}
		if a.Text == "" || isSpace(a.Text[0]) || strings.IndexByte(placementPrefixes, a.Text[0]) >= 0 {
			continue
		}
		clean, dim := Canonicalize(a.Text)
		if clean == "" {
			continue
		}
		parts = append(parts, clean)
		diminished = diminished || dim
	}

	// latest first, alternates in parentheses last
	var primary, alternates strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		if strings.HasPrefix(parts[i], "(") {
			alternates.WriteString(parts[i])
		} else {
			primary.WriteString(parts[i])
		}
	}
	return primary.String() + alternates.String(), diminished, repeat
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isPunct(c byte) bool {
	return c > ' ' && c < 0x7f && !isAlnum(c)
}

func isRoot(c byte) bool {
	return c >= 'A' && c <= 'G'
}

func stripWhitespace(text string) string {
	var b strings.Builder
	for i := 0; i < len(text) && text[i] != '\n'; i++ {
		c := text[i]
		switch {
		case isSpace(c):
		case c == 0x01:
			b.WriteByte('#')
		case c == 0x02:
			b.WriteByte('b')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func stripPunct(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !isPunct(c) || strings.IndexByte(keptPunct, c) >= 0 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// "(or G)" -> "(G)"
func stripOr(text string) string {
	if i := strings.Index(text, "(or"); i >= 0 {
		return text[:i+1] + text[i+3:]
	}
	return text
}

// Footnote-like parentheticals are dropped, short alternates such as "(G)"
// or "(Em7)" are kept.
func stripLongParenthetical(text string) string {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return text
	}
	span := strings.IndexByte(text[open:], ')')
	if span < 0 {
		return text[:open]
	}
	if span > 10 || (span > 5 && len(text) != span+1) {
		return text[:open] + text[open+span+1:]
	}
	return text
}

// foldSuffix checks that text reads as a chord and lowercases everything
// after the root, except a slash bass note.
func foldSuffix(text string) (string, bool) {
	index := 0
	if strings.HasPrefix(text, "(") {
		index = 1
	}
	if len(text) <= index || !isRoot(text[index]) {
		return "", false
	}
	if len(text) > index+1 {
		next := text[index+1]
		if next != '#' && next != ')' && next != '(' && next != '/' && !isAlnum(next) {
			return "", false
		}
	}

	rest := text[index+1:]
	suffix, bass := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		suffix, bass = rest[:i], rest[i:]
	}
	suffix = strings.ToLower(suffix)
	if !knownSuffix(suffix) {
		return "", false
	}
	bass, ok := foldBass(bass)
	if !ok {
		return "", false
	}
	return text[:index+1] + suffix + bass, true
}

func knownSuffix(suffix string) bool {
	for _, word := range []string{"maj", "min", "dim", "aug"} {
		if strings.Contains(suffix, word) {
			return true
		}
	}
	for i := 0; i < len(suffix); i++ {
		c := suffix[i]
		if c == 'm' || c == '#' || c == '(' || c == ')' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'g') {
			continue
		}
		return false
	}
	return true
}

// "/b" -> "/B", "/F#)" stays, anything else is rejected
func foldBass(bass string) (string, bool) {
	if bass == "" {
		return "", true
	}
	if len(bass) < 2 {
		return "", false
	}
	root := bass[1]
	if root >= 'a' && root <= 'g' {
		root -= 'a' - 'A'
	}
	if !isRoot(root) {
		return "", false
	}
	tail := bass[2:]
	if strings.HasPrefix(tail, "#") || strings.HasPrefix(tail, "b") {
		tail = tail[1:]
	}
	if tail != "" && tail != ")" {
		return "", false
	}
	return "/" + string(root) + bass[2:], true
}
