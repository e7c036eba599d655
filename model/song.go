package model

import "strings"

type SongID int
type PartID int
type SectionID int
type MeasureID int
type ChordID int

// NoID marks an absent handle for any of the ID types.
const NoID = -1

type Mode uint8

const (
	ModeNone Mode = iota
	ModeDorian
	ModeMixolydian
)

func (m Mode) String() string {
	switch m {
	case ModeDorian:
		return "dorian"
	case ModeMixolydian:
		return "mixolydian"
	}
	return ""
}

// MaxLongestIntervals is the number of melodic intervals a song keeps track of.
const MaxLongestIntervals = 10

// MaxEndings bounds the alternate endings of a section.
const MaxEndings = 4

type Song struct {
	Index        int
	Title        string
	Composer     string
	Key          byte
	KeySignature byte
	Accidental   int
	Minor        bool
	Mode         Mode

	TimeSignature   string
	MeterChange     bool
	MeasureDuration int
	BeatDuration    int
	BeatsPerMeasure int

	// sorted, largest first
	LongestIntervals []int

	Parts []PartID
}

// KeyName renders the key as a chord-style name, e.g. "F#m" or "Bb".
func (s *Song) KeyName() string {
	if s.Key == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte(s.Key)
	switch s.Accidental {
	case -1:
		b.WriteByte('b')
	case 1:
		b.WriteByte('#')
	}
	if s.Minor {
		b.WriteByte('m')
	}
	return b.String()
}

// AddInterval records a melodic interval, keeping only the largest
// MaxLongestIntervals in descending order.
func (s *Song) AddInterval(interval int) {
	if interval < 0 {
		interval = -interval
	}
	pos := len(s.LongestIntervals)
	for i, v := range s.LongestIntervals {
		if interval > v {
			pos = i
			break
		}
	}
	if pos >= MaxLongestIntervals {
		return
	}
	s.LongestIntervals = append(s.LongestIntervals, 0)
	copy(s.LongestIntervals[pos+1:], s.LongestIntervals[pos:])
	s.LongestIntervals[pos] = interval
	if len(s.LongestIntervals) > MaxLongestIntervals {
		s.LongestIntervals = s.LongestIntervals[:MaxLongestIntervals]
	}
}

type Part struct {
	Name      string
	AutoNamed bool
	Sections  []SectionID
}

type Section struct {
	Repeat   bool
	Measures []MeasureID
	Endings  [][]MeasureID
}

type Measure struct {
	Duration int
	Beats    int
	Notes    int
	Leadin   bool
	Finished bool
	// 0 for the main sequence, k for the k-th alternate ending
	Ending        int
	TimeSignature string
	Chords        []ChordID
}

// Document is an arena holding every node of a forest of songs. Nodes are
// only ever appended; handles stay valid for the life of the document.
// Pointers returned by the accessors are invalidated by the next New* call
// on the same node type, so callers re-fetch after allocating.
type Document struct {
	Songs []SongID

	songs    []Song
	parts    []Part
	sections []Section
	measures []Measure
	chords   []Chord
}

func NewDocument() *Document {
	return &Document{}
}

func (d *Document) NewSong(s Song) SongID {
	d.songs = append(d.songs, s)
	id := SongID(len(d.songs) - 1)
	d.Songs = append(d.Songs, id)
	return id
}

func (d *Document) NewPart(p Part) PartID {
	d.parts = append(d.parts, p)
	return PartID(len(d.parts) - 1)
}

func (d *Document) NewSection(s Section) SectionID {
	d.sections = append(d.sections, s)
	return SectionID(len(d.sections) - 1)
}

func (d *Document) NewMeasure(m Measure) MeasureID {
	d.measures = append(d.measures, m)
	return MeasureID(len(d.measures) - 1)
}

func (d *Document) NewChord(c Chord) ChordID {
	d.chords = append(d.chords, c)
	return ChordID(len(d.chords) - 1)
}

func (d *Document) Song(id SongID) *Song          { return &d.songs[id] }
func (d *Document) Part(id PartID) *Part          { return &d.parts[id] }
func (d *Document) Section(id SectionID) *Section { return &d.sections[id] }
func (d *Document) Measure(id MeasureID) *Measure { return &d.measures[id] }
func (d *Document) Chord(id ChordID) *Chord       { return &d.chords[id] }

func (d *Document) MeasureEmpty(id MeasureID) bool {
	return len(d.measures[id].Chords) == 0
}

func (d *Document) SequenceEmpty(seq []MeasureID) bool {
	for _, m := range seq {
		if !d.MeasureEmpty(m) {
			return false
		}
	}
	return true
}

func (d *Document) SectionEmpty(id SectionID) bool {
	s := &d.sections[id]
	if !d.SequenceEmpty(s.Measures) {
		return false
	}
	for _, e := range s.Endings {
		if !d.SequenceEmpty(e) {
			return false
		}
	}
	return true
}

func (d *Document) PartEmpty(id PartID) bool {
	for _, s := range d.parts[id].Sections {
		if !d.SectionEmpty(s) {
			return false
		}
	}
	return true
}

func (d *Document) SongEmpty(id SongID) bool {
	for _, p := range d.songs[id].Parts {
		if !d.PartEmpty(p) {
			return false
		}
	}
	return true
}

// PartMeasureCount counts every measure of a part, endings included.
func (d *Document) PartMeasureCount(id PartID) int {
	n := 0
	for _, sid := range d.parts[id].Sections {
		s := &d.sections[sid]
		n += len(s.Measures)
		for _, e := range s.Endings {
			n += len(e)
		}
	}
	return n
}

// EachMeasure calls fn for every measure of a song in document order: main
// sequences first, then the endings of each section.
func (d *Document) EachMeasure(id SongID, fn func(MeasureID)) {
	for _, pid := range d.songs[id].Parts {
		for _, sid := range d.parts[pid].Sections {
			s := &d.sections[sid]
			for _, m := range s.Measures {
				fn(m)
			}
			for _, e := range s.Endings {
				for _, m := range e {
					fn(m)
				}
			}
		}
	}
}
