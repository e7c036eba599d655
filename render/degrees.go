package render

import (
	"strings"

	"github.com/jsphweid/chordchart/model"
)

var numerals = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// scaleDegrees renders chord roots as roman numerals counted from the key
// signature's letter, lower case for minor chords. Labels that do not start
// with a root letter are left alone.
func scaleDegrees(keySignature byte) func(*model.Chord) string {
	return func(c *model.Chord) string {
		label := c.Label
		if keySignature < 'A' || keySignature > 'G' {
			return label
		}
		open := strings.HasPrefix(label, "(")
		body := strings.TrimPrefix(label, "(")
		if body == "" || body[0] < 'A' || body[0] > 'G' {
			return label
		}

		root, rest := body[0], body[1:]
		accidental := ""
		if strings.HasPrefix(rest, "#") || strings.HasPrefix(rest, "b") {
			accidental, rest = rest[:1], rest[1:]
		}
		numeral := numerals[(int(root)-int(keySignature)+7)%7]
		if strings.HasPrefix(rest, "m") && !strings.HasPrefix(rest, "maj") {
			numeral, rest = strings.ToLower(numeral), rest[1:]
		}

		out := accidental + numeral + rest
		if open {
			out = "(" + out
		}
		return out
	}
}
