package chord

import (
	"fmt"
	"testing"

	"github.com/jsphweid/chordchart/constants"
	"github.com/jsphweid/chordchart/model"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeKeepsRecognizedChords(t *testing.T) {
	cases := map[string]string{
		"G":      "G",
		"Am":     "Am",
		"Bbm7":   "Bbm7",
		"F#m":    "F#m",
		"Gmaj7":  "Gmaj7",
		"GMaj7":  "Gmaj7",
		"C7":     "C7",
		"D7(b9)": "D7(b9)",
		"Am/G":   "Am/G",
		"G/b":    "G/B",
		"(G)":    "(G)",
		" E m ":  "Em",
		"Caug":   "Caug",
	}

	for raw, expected := range cases {
		name := fmt.Sprintf("canonicalize %q", raw)
		t.Run(name, func(t *testing.T) {
			label, dim := Canonicalize(raw)
			assert := assert.New(t)
			assert.Equal(expected, label)
			assert.False(dim)
		})
	}
}

func TestCanonicalizeRejectsNoise(t *testing.T) {
	for _, raw := range []string{"", "fine", "D.C. al Coda", "Gsus4", "H7", "G-7", "x"} {
		label, _ := Canonicalize(raw)
		assert.Equal(t, "", label, raw)
	}
}

func TestCanonicalizeDiminished(t *testing.T) {
	label, dim := Canonicalize("Bdim")

	assert := assert.New(t)
	assert.True(dim)
	assert.Equal("B"+constants.DiminishedMarker, label)

	label, dim = Canonicalize("C#dim7")
	assert.True(dim)
	assert.Equal("C#"+constants.DiminishedMarker+"7", label)
}

func TestCanonicalizeControlCodes(t *testing.T) {
	label, _ := Canonicalize("F\x01m")
	assert.Equal(t, "F#m", label)

	label, _ = Canonicalize("B\x02")
	assert.Equal(t, "Bb", label)
}

func TestCanonicalizeStripsPunctuation(t *testing.T) {
	label, _ := Canonicalize("G!")
	assert.Equal(t, "G", label)

	label, _ = Canonicalize("*Em,")
	assert.Equal(t, "Em", label)
}

func TestCanonicalizeParentheticals(t *testing.T) {
	assert := assert.New(t)

	label, _ := Canonicalize("(or G)")
	assert.Equal("(G)", label)

	// footnote is dropped, chord survives
	label, _ = Canonicalize("D(second time only)")
	assert.Equal("D", label)

	// medium parenthetical next to a chord is dropped
	label, _ = Canonicalize("G(Em7b5)")
	assert.Equal("G", label)

	// medium parenthetical on its own is kept
	label, _ = Canonicalize("(Em7b5)")
	assert.Equal("(Em7b5)", label)

	// unclosed parenthetical is truncated
	label, _ = Canonicalize("A(or")
	assert.Equal("A", label)
}

func TestNameConcatenatesLatestFirstAlternatesLast(t *testing.T) {
	annotations := []model.Annotation{
		{Text: "(Em)"},
		{Text: "D"},
		{Text: "G"},
	}
	label, dim, repeat := Name(annotations)

	assert := assert.New(t)
	assert.Equal("GD(Em)", label)
	assert.False(dim)
	assert.False(repeat)
}

func TestNameSkipsPlacedText(t *testing.T) {
	annotations := []model.Annotation{
		{Text: "^Fine"},
		{Text: "_D.C."},
		{Text: "Am"},
	}
	label, _, _ := Name(annotations)
	assert.Equal(t, "Am", label)
}

func TestNameReportsRepeatMarkers(t *testing.T) {
	label, _, repeat := Name([]model.Annotation{{Text: "1", Repeat: true}})

	assert := assert.New(t)
	assert.Equal("", label)
	assert.True(repeat)
}

func TestNameDiminished(t *testing.T) {
	_, dim, _ := Name([]model.Annotation{{Text: "G"}, {Text: "Adim"}})
	assert.True(t, dim)
}
