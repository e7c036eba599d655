// Package quantize places the chord changes of a measure on the coarsest
// even grid that still tells them apart.
package quantize

import (
	"strings"

	"github.com/jsphweid/chordchart/model"
	"golang.org/x/exp/slices"
)

// subdivisions of a beat in the starting grid
const slotsPerBeat = 4

// Grid holds one cell per slot; an empty cell has no chord onset.
type Grid struct {
	Cells []string
}

func Quantize(doc *model.Document, id model.MeasureID) Grid {
	m := doc.Measure(id)
	beats := m.Beats
	if beats <= 0 {
		beats = 4
	}
	if m.Duration <= 0 {
		var labels []string
		for _, c := range m.Chords {
			labels = append(labels, doc.Chord(c).Label)
		}
		return Grid{Cells: []string{strings.Join(labels, "")}}
	}

	cells := make([]string, beats*slotsPerBeat)
	offset, last := 0, -1
	for _, cid := range m.Chords {
		c := doc.Chord(cid)
		slot := offset * len(cells) / m.Duration
		offset += c.Duration
		if slot >= len(cells) {
			slot = len(cells) - 1
		}
		switch {
		case last >= 0 && c.Optional():
			cells[last] += c.Label
		case last >= 0 && cells[last] == c.Label:
		default:
			cells[slot] = c.Label
			last = slot
		}
	}

	for len(cells) > beats {
		var factor int
		switch {
		case len(cells)%2 == 0:
			factor = 2
		case len(cells)%3 == 0:
			factor = 3
		default:
			return round(Grid{Cells: cells}, beats)
		}
		merged, ok := merge(cells, factor)
		if !ok {
			break
		}
		cells = merged
	}
	return round(Grid{Cells: cells}, beats)
}

// merge folds every factor cells into one; it fails when two onsets would
// share a cell.
func merge(cells []string, factor int) ([]string, bool) {
	out := make([]string, len(cells)/factor)
	for i := range out {
		for _, c := range cells[i*factor : (i+1)*factor] {
			if c == "" {
				continue
			}
			if out[i] != "" {
				return nil, false
			}
			out[i] = c
		}
	}
	return out, true
}

// a 6/8-style measure whose changes fall on the two main pulses reads as
// two cells
func round(g Grid, beats int) Grid {
	if beats == 6 && len(g.Cells) == 6 && onlyOn(g.Cells, 0, 3) {
		return Grid{Cells: []string{g.Cells[0], g.Cells[3]}}
	}
	return g
}

func onlyOn(cells []string, positions ...int) bool {
	for i, c := range cells {
		if c != "" && !slices.Contains(positions, i) {
			return false
		}
	}
	return true
}

// String encodes the grid for the export format: labels at onsets, a comma
// between adjacent onsets, a space per empty cell.
func (g Grid) String() string {
	var b strings.Builder
	for i, c := range g.Cells {
		if c == "" {
			b.WriteByte(' ')
			continue
		}
		if i > 0 && g.Cells[i-1] != "" {
			b.WriteByte(',')
		}
		b.WriteString(c)
	}
	return b.String()
}
