package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordchart/model"
	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const quarter = 384

// three quarters in 3/4 with the last one held across the bar line
func waltz(t *testing.T) []byte {
	s := smf.New()
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("Waltz"))
	tr.Add(0, smf.MetaMeter(3, 4))
	tr.Add(0, smf.MetaText("G"))
	tr.Add(0, gomidi.NoteOn(0, 67, 100))
	tr.Add(960, gomidi.NoteOff(0, 67))
	tr.Add(0, gomidi.NoteOn(0, 69, 100))
	tr.Add(960, gomidi.NoteOff(0, 69))
	tr.Add(0, smf.MetaLyric("D"))
	tr.Add(0, gomidi.NoteOn(0, 71, 100))
	tr.Add(0, gomidi.NoteOn(0, 74, 100))
	tr.Add(1920, gomidi.NoteOff(0, 71))
	tr.Add(0, gomidi.NoteOff(0, 74))
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestEvents(t *testing.T) {
	s, err := Read(bytes.NewReader(waltz(t)))
	assert := assert.New(t)
	assert.NoError(err)

	events, err := Events(s)
	assert.NoError(err)
	assert.Equal([]model.Event{
		model.NewTune{Index: 1},
		model.Metadata{Kind: model.MetaTitle, Text: "Waltz"},
		model.Metadata{Kind: model.MetaMeter, Text: "3/4"},
		model.Note{Duration: quarter, Pitches: []int{67}, SequenceStart: true, Annotations: []model.Annotation{{Text: "G"}}},
		model.Note{Duration: quarter, Pitches: []int{69}, SequenceStart: true},
		model.Note{Duration: quarter, Pitches: []int{71, 74}, SequenceStart: true, Annotations: []model.Annotation{{Text: "D"}}},
		model.Bar{Kind: model.BarSingle},
		model.Note{Duration: quarter, Pitches: []int{71, 74}},
		model.Bar{Kind: model.BarThinThick},
	}, events)
}

func TestGapsBecomeRests(t *testing.T) {
	s := smf.New()
	var tr smf.Track
	tr.Add(480, gomidi.NoteOn(0, 60, 90))
	tr.Add(480, gomidi.NoteOff(0, 60))
	tr.Add(2880, gomidi.NoteOn(0, 62, 90))
	tr.Add(960, gomidi.NoteOn(0, 62, 0))
	tr.Close(0)
	assert := assert.New(t)
	assert.NoError(s.Add(tr))

	events, err := Events(s)
	assert.NoError(err)
	assert.Equal([]model.Event{
		model.NewTune{Index: 1},
		model.Metadata{Kind: model.MetaMeter, Text: "4/4"},
		model.Rest{Duration: quarter / 2, SequenceStart: true},
		model.Note{Duration: quarter / 2, Pitches: []int{60}, SequenceStart: true},
		model.Rest{Duration: 3 * quarter, SequenceStart: true},
		model.Bar{Kind: model.BarSingle},
		model.Note{Duration: quarter, Pitches: []int{62}, SequenceStart: true},
		model.Bar{Kind: model.BarThinThick},
	}, events)
}

func TestReadMidiFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waltz.mid")
	assert := assert.New(t)
	assert.NoError(os.WriteFile(path, waltz(t), 0644))

	events, err := Load(path)
	assert.NoError(err)
	assert.Len(events, 9)

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(err)
}

func TestReadGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not a midi file")))
	assert.Error(t, err)
}
