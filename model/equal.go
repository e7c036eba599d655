package model

import "golang.org/x/exp/slices"

// Structural equality, composed bottom-up. Durations, note counts and
// leadin flags do not take part: two charts are the same when they read the
// same.

func (d *Document) ChordsEqual(a, b ChordID) bool {
	ca, cb := &d.chords[a], &d.chords[b]
	return ca.Label == cb.Label && ca.Diminished == cb.Diminished
}

func (d *Document) MeasuresEqual(a, b MeasureID) bool {
	ma, mb := &d.measures[a], &d.measures[b]
	return ma.TimeSignature == mb.TimeSignature &&
		slices.EqualFunc(ma.Chords, mb.Chords, d.ChordsEqual)
}

func (d *Document) SequencesEqual(a, b []MeasureID) bool {
	return slices.EqualFunc(a, b, d.MeasuresEqual)
}

func (d *Document) SectionsEqual(a, b SectionID) bool {
	sa, sb := &d.sections[a], &d.sections[b]
	return sa.Repeat == sb.Repeat &&
		d.SequencesEqual(sa.Measures, sb.Measures) &&
		slices.EqualFunc(sa.Endings, sb.Endings, d.SequencesEqual)
}

func (d *Document) PartsEqual(a, b PartID) bool {
	pa, pb := &d.parts[a], &d.parts[b]
	return pa.Name == pb.Name &&
		slices.EqualFunc(pa.Sections, pb.Sections, d.SectionsEqual)
}

func (d *Document) SongsEqual(a, b SongID) bool {
	sa, sb := &d.songs[a], &d.songs[b]
	return sa.Title == sb.Title &&
		sa.Key == sb.Key &&
		sa.Accidental == sb.Accidental &&
		sa.Minor == sb.Minor &&
		sa.Mode == sb.Mode &&
		sa.TimeSignature == sb.TimeSignature &&
		slices.EqualFunc(sa.Parts, sb.Parts, d.PartsEqual)
}
