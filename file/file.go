// Package file loads event streams from disk by extension.
package file

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jsphweid/chordchart/eventstream"
	"github.com/jsphweid/chordchart/midi"
	"github.com/jsphweid/chordchart/model"
)

// Batch is the concatenated events of several files. Tune indexes are
// renumbered so they stay unique, and Sources maps each back to its file.
type Batch struct {
	Events  []model.Event
	Sources map[int]string
}

func Load(path string) ([]model.Event, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".evt":
		return eventstream.ParseFile(path)
	case ".mid", ".midi":
		return midi.Load(path)
	}
	return nil, fmt.Errorf("%s: unsupported file type", path)
}

func LoadAll(paths []string) (Batch, error) {
	b := Batch{Sources: make(map[int]string)}
	next := 1
	for _, path := range paths {
		events, err := Load(path)
		if err != nil {
			return b, err
		}
		for _, ev := range events {
			if t, ok := ev.(model.NewTune); ok {
				t.Index = next
				b.Sources[next] = path
				next++
				ev = t
			}
			b.Events = append(b.Events, ev)
		}
	}
	return b, nil
}
