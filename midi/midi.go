// Package midi turns standard MIDI files into notation events so they can be
// charted like any other source.
package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/chordchart/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return Read(bytes.NewReader(dat))
}

// Read decodes an SMF. The decoder can panic on malformed input, see
// https://github.com/gomidi/midi/issues/20
func Read(r io.Reader) (s *smf.SMF, e error) {
	defer func() {
		if rec := recover(); rec != nil {
			s, e = nil, fmt.Errorf("parsing midi file: %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return res, nil
}

// Load reads a MIDI file and converts it to events.
func Load(path string) ([]model.Event, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return Events(s)
}
