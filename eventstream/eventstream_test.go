package eventstream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jsphweid/chordchart/model"
	"github.com/stretchr/testify/assert"
)

const kesh = `# a jig
tune 1
title "The Kesh"
composer "Trad."
key "G" sf=1
unit "1/8"
meter "6/8"

bar left-repeat
note 576 [67] seq "G"   # first chord
note 576 [71,74] "D"
rest 192 seq
bar single repeat "1"
bar right-repeat dotted
eoln
`

func TestParse(t *testing.T) {
	events, err := ParseString("kesh.evt", kesh)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.Event{
		model.NewTune{Index: 1},
		model.Metadata{Kind: model.MetaTitle, Text: "The Kesh"},
		model.Metadata{Kind: model.MetaComposer, Text: "Trad."},
		model.Metadata{Kind: model.MetaKey, Text: "G", SharpsFlats: 1},
		model.Metadata{Kind: model.MetaUnitLength, Text: "1/8"},
		model.Metadata{Kind: model.MetaMeter, Text: "6/8"},
		model.Bar{Kind: model.BarLeftRepeat},
		model.Note{Duration: 576, Pitches: []int{67}, SequenceStart: true, Annotations: []model.Annotation{{Text: "G"}}},
		model.Note{Duration: 576, Pitches: []int{71, 74}, Annotations: []model.Annotation{{Text: "D"}}},
		model.Rest{Duration: 192, SequenceStart: true},
		model.Bar{Kind: model.BarSingle, Annotations: []model.Annotation{{Text: "1", Repeat: true}}},
		model.Bar{Kind: model.BarRightRepeat, Dotted: true},
		model.Inert{Kind: model.InertEndOfLine},
	}, events)
}

func TestRoundTrip(t *testing.T) {
	events := []model.Event{
		model.NewTune{Index: 12},
		model.Metadata{Kind: model.MetaTitle, Text: `Say "Hello"`},
		model.Metadata{Kind: model.MetaKey, Text: "Bb", SharpsFlats: -2},
		model.Metadata{Kind: model.MetaPartLabel, Text: "B"},
		model.Metadata{Kind: model.MetaVoice, Text: "2"},
		model.Note{Duration: 96, Pitches: []int{60, 64, 67}, SequenceStart: true, Annotations: []model.Annotation{{Text: "C"}, {Text: "(Am)"}}},
		model.Rest{Duration: 384, Annotations: []model.Annotation{{Text: "G7"}}},
		model.Bar{Kind: model.BarDoubleRepeat},
		model.Bar{Kind: model.BarOpenBracket, Annotations: []model.Annotation{{Text: "2", Repeat: true}}},
		model.Bar{Kind: model.BarDashed},
		model.Inert{Kind: model.InertClef},
		model.Inert{Kind: model.InertVoiceOverlay},
		model.Inert{Kind: model.InertTuplet},
		model.Bar{Kind: model.BarThinThick},
	}

	var buf bytes.Buffer
	assert := assert.New(t)
	assert.NoError(Write(&buf, events))

	parsed, err := Parse("round.evt", &buf)
	assert.NoError(err)
	assert.Equal(events, parsed)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"unknown keyword", "tune 1\nchord \"G\"\n", 2},
		{"unknown bar", "tune 1\n\n# comment\nbar wavy\n", 4},
		{"missing duration", "note [60]\n", 1},
		{"unterminated string", "title \"Kesh\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString("bad.evt", tt.input)

			assert := assert.New(t)
			var perr *ParseError
			assert.True(errors.As(err, &perr))
			assert.Equal("bad.evt", perr.Path)
			assert.Equal(tt.line, perr.Line)
			assert.NotEmpty(perr.Message)
		})
	}
}

func TestFormat(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(`key "D" sf=2`, Format(model.Metadata{Kind: model.MetaKey, Text: "D", SharpsFlats: 2}))
	assert.Equal(`note 384 [62] seq "D"`, Format(model.Note{Duration: 384, Pitches: []int{62}, SequenceStart: true, Annotations: []model.Annotation{{Text: "D"}}}))
	assert.Equal(`bar right-repeat dotted`, Format(model.Bar{Kind: model.BarRightRepeat, Dotted: true}))
	assert.Equal("eoln", Format(model.Inert{Kind: model.InertEndOfLine}))
}
