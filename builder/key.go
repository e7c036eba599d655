package builder

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/jsphweid/chordchart/constants"
	"github.com/jsphweid/chordchart/model"
)

const (
	circleOfFifthsSharps = "FCGDAEB"
	circleOfFifthsFlats  = "BEADGCF"
)

// InvalidKey is recorded when a key signature count is out of range.
const InvalidKey = '?'

// KeyFromSharpsFlats maps a key signature (positive sharps, negative flats)
// to the major key it belongs to.
func KeyFromSharpsFlats(sf int) (letter byte, accidental int) {
	switch {
	case sf >= 0 && sf <= 5:
		return circleOfFifthsSharps[sf+1], 0
	case sf >= 6 && sf <= 8:
		return circleOfFifthsSharps[sf-6], 1
	case sf == -1:
		return 'F', 0
	case sf <= -2 && sf >= -8:
		return circleOfFifthsFlats[-sf-2], -1
	}
	return InvalidKey, 0
}

type key struct {
	letter       byte
	accidental   int
	minor        bool
	mode         model.Mode
	keySignature byte
}

func parseKey(text string, sf int) key {
	var k key
	k.keySignature, _ = KeyFromSharpsFlats(sf)

	text = strings.TrimSpace(stripFieldTag(text))
	if text != "" {
		tonic := byte(unicode.ToUpper(rune(text[0])))
		rest := text[1:]
		accidental := 0
		if strings.HasPrefix(rest, "#") {
			accidental, rest = 1, rest[1:]
		} else if strings.HasPrefix(rest, "b") {
			accidental, rest = -1, rest[1:]
		}
		suffix := strings.ToLower(strings.TrimSpace(rest))
		word := suffix
		if i := strings.IndexFunc(suffix, func(r rune) bool { return !unicode.IsLetter(r) }); i >= 0 {
			word = suffix[:i]
		}

		mode, minor := model.ModeNone, false
		switch {
		case word == "m" || strings.HasPrefix(word, "min") || strings.Contains(suffix, "minor"):
			minor = true
		case strings.HasPrefix(word, "dor"):
			mode = model.ModeDorian
		case strings.HasPrefix(word, "mix"):
			mode = model.ModeMixolydian
		}
		if tonic >= 'A' && tonic <= 'G' && (minor || mode != model.ModeNone) {
			k.letter, k.accidental, k.minor, k.mode = tonic, accidental, minor, mode
			return k
		}
	}

	k.letter, k.accidental = KeyFromSharpsFlats(sf)
	return k
}

// "K: D" -> " D"
func stripFieldTag(text string) string {
	if len(text) >= 2 && text[1] == ':' && text[0] >= 'A' && text[0] <= 'Z' {
		return text[2:]
	}
	return text
}

func normalizeTimeSignature(text string) string {
	text = strings.TrimSpace(stripFieldTag(text))
	switch text {
	case "C":
		return "4/4"
	case "C|":
		return "2/2"
	}
	return text
}

// parseFraction reads "6/8" or "1/16"; trailing text after the
// denominator is ignored.
func parseFraction(text string) (int, int, bool) {
	num, denom, ok := strings.Cut(strings.TrimSpace(text), "/")
	if !ok {
		return 0, 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0, 0, false
	}
	denom = strings.TrimSpace(denom)
	end := strings.IndexFunc(denom, func(r rune) bool { return !unicode.IsDigit(r) })
	if end >= 0 {
		denom = denom[:end]
	}
	d, err := strconv.Atoi(denom)
	if err != nil || n == 0 || d == 0 {
		return 0, 0, false
	}
	return n, d, true
}

func unitDivisor(denom int) int {
	switch denom {
	case 16:
		return 2
	case 32:
		return 4
	}
	return 1
}

// compound meters count in dotted beats
func beatDuration(num, denom int) int {
	if denom == 8 && num > 3 && num%3 == 0 {
		return 3 * constants.WholeNote / 8
	}
	return constants.WholeNote / denom
}

func stripArticle(title string) string {
	title = strings.TrimSpace(stripFieldTag(title))
	if len(title) >= 4 && strings.EqualFold(title[:4], "The ") {
		return title[4:]
	}
	return title
}

// "AABB", "A2B" or "(AB)2C" declare a play order in the header
func isPlayOrder(label string) bool {
	if len(label) < 2 {
		return false
	}
	for _, r := range label {
		if !(r >= 'A' && r <= 'Z') && !unicode.IsDigit(r) && r != '.' && r != '(' && r != ')' {
			return false
		}
	}
	return true
}
