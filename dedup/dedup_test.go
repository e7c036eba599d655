package dedup

import (
	"sort"
	"testing"

	"github.com/jsphweid/chordchart/model"
	"github.com/stretchr/testify/assert"
)

type fixture struct {
	doc *model.Document
}

func (f fixture) measure(labels ...string) model.MeasureID {
	var chords []model.ChordID
	for _, l := range labels {
		chords = append(chords, f.doc.NewChord(model.Chord{Label: l, Duration: 384}))
	}
	return f.doc.NewMeasure(model.Measure{Beats: 4, Chords: chords, Duration: 384 * len(labels)})
}

func (f fixture) seq(labels ...string) []model.MeasureID {
	var out []model.MeasureID
	for _, l := range labels {
		if l == "" {
			out = append(out, f.measure())
		} else {
			out = append(out, f.measure(l))
		}
	}
	return out
}

func (f fixture) song(title, composer string, sections ...model.Section) model.SongID {
	var ids []model.SectionID
	for _, s := range sections {
		ids = append(ids, f.doc.NewSection(s))
	}
	part := f.doc.NewPart(model.Part{Name: "A", AutoNamed: true, Sections: ids})
	return f.doc.NewSong(model.Song{Title: title, Composer: composer, Key: 'G', TimeSignature: "4/4", Parts: []model.PartID{part}})
}

func labels(doc *model.Document, seq []model.MeasureID) []string {
	var out []string
	for _, m := range seq {
		for _, c := range doc.Measure(m).Chords {
			out = append(out, doc.Chord(c).Label)
		}
	}
	return out
}

func TestNormalizeStripsChordlessMeasures(t *testing.T) {
	f := fixture{model.NewDocument()}
	id := f.song("Kesh", "", model.Section{Measures: f.seq("G", "", "D", "")})

	Normalize(f.doc, id)

	section := f.doc.Section(f.doc.Part(f.doc.Song(id).Parts[0]).Sections[0])
	assert.Equal(t, []string{"G", "D"}, labels(f.doc, section.Measures))
}

func TestNormalizeSplicesEqualEndings(t *testing.T) {
	f := fixture{model.NewDocument()}
	id := f.song("Kesh", "", model.Section{
		Repeat:   true,
		Measures: f.seq("G", "D"),
		Endings:  [][]model.MeasureID{f.seq("C"), f.seq("C")},
	})

	Normalize(f.doc, id)

	section := f.doc.Section(f.doc.Part(f.doc.Song(id).Parts[0]).Sections[0])
	assert := assert.New(t)
	assert.Empty(section.Endings)
	assert.Equal([]string{"G", "D", "C"}, labels(f.doc, section.Measures))
	assert.True(section.Repeat)
}

func TestNormalizeKeepsDistinctEndings(t *testing.T) {
	f := fixture{model.NewDocument()}
	id := f.song("Kesh", "", model.Section{
		Measures: f.seq("G", "D"),
		Endings:  [][]model.MeasureID{f.seq("C"), f.seq(""), f.seq("D")},
	})

	Normalize(f.doc, id)

	section := f.doc.Section(f.doc.Part(f.doc.Song(id).Parts[0]).Sections[0])
	assert := assert.New(t)
	assert.Len(section.Endings, 2)
	assert.Equal([]string{"C"}, labels(f.doc, section.Endings[0]))
	assert.Equal([]string{"D"}, labels(f.doc, section.Endings[1]))
}

func TestNormalizeSplicesSingleEnding(t *testing.T) {
	f := fixture{model.NewDocument()}
	id := f.song("Kesh", "", model.Section{
		Measures: f.seq("G"),
		Endings:  [][]model.MeasureID{f.seq("", ""), f.seq("D")},
	})

	Normalize(f.doc, id)

	section := f.doc.Section(f.doc.Part(f.doc.Song(id).Parts[0]).Sections[0])
	assert.Empty(t, section.Endings)
	assert.Equal(t, []string{"G", "D"}, labels(f.doc, section.Measures))
}

func TestNormalizeDropsEmptySectionsAndParts(t *testing.T) {
	f := fixture{model.NewDocument()}
	id := f.song("Kesh", "", model.Section{Measures: f.seq("", "")}, model.Section{Measures: f.seq("G")})
	empty := f.doc.NewPart(model.Part{Name: "B", Sections: []model.SectionID{f.doc.NewSection(model.Section{})}})
	song := f.doc.Song(id)
	song.Parts = append(song.Parts, empty)

	Normalize(f.doc, id)

	song = f.doc.Song(id)
	assert := assert.New(t)
	assert.Len(song.Parts, 1)
	assert.Len(f.doc.Part(song.Parts[0]).Sections, 1)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	f := fixture{model.NewDocument()}
	a := f.song("Kesh", "", model.Section{
		Measures: f.seq("G", "", "D"),
		Endings:  [][]model.MeasureID{f.seq("C", ""), f.seq("Em")},
	})
	b := f.song("Kesh", "", model.Section{
		Measures: f.seq("G", "", "D"),
		Endings:  [][]model.MeasureID{f.seq("C", ""), f.seq("Em")},
	})

	Normalize(f.doc, a)
	Normalize(f.doc, b)
	Normalize(f.doc, b)

	assert := assert.New(t)
	assert.True(f.doc.SongsEqual(a, b))
	assert.Equal(Fingerprint(f.doc, a), Fingerprint(f.doc, b))
}

func TestMergeDuplicatesKeepsFirst(t *testing.T) {
	f := fixture{model.NewDocument()}
	first := f.song("Kesh", "Trad.", model.Section{Measures: f.seq("G", "D")})
	other := f.song("Butterfly", "", model.Section{Measures: f.seq("Em", "D")})
	second := f.song("Kesh", "Someone Else", model.Section{Measures: f.seq("G", "D")})

	dropped := MergeDuplicates(f.doc)

	assert := assert.New(t)
	assert.Equal([]model.SongID{second}, dropped)
	assert.Equal([]model.SongID{first, other}, f.doc.Songs)
	assert.Equal("Trad.", f.doc.Song(f.doc.Songs[0]).Composer)
}

func TestMergeDuplicatesRespectsStructure(t *testing.T) {
	f := fixture{model.NewDocument()}
	f.song("Kesh", "", model.Section{Measures: f.seq("G", "D")})
	f.song("Kesh", "", model.Section{Repeat: true, Measures: f.seq("G", "D")})
	f.song("Kesh", "", model.Section{Measures: f.seq("G", "C")})

	dropped := MergeDuplicates(f.doc)

	assert.Empty(t, dropped)
	assert.Len(t, f.doc.Songs, 3)
}

func TestMergeDuplicatesIgnoresOrder(t *testing.T) {
	tests := []struct {
		name  string
		order string
	}{
		{"abab", "abab"},
		{"baab", "baab"},
		{"aabb", "aabb"},
		{"bbaa", "bbaa"},
	}

	var want []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fixture{model.NewDocument()}
			for _, r := range tt.order {
				if r == 'a' {
					f.song("Kesh", "", model.Section{Repeat: true, Measures: f.seq("G", "D")})
				} else {
					f.song("Butterfly", "", model.Section{Measures: f.seq("Em", "D")})
				}
			}

			dropped := MergeDuplicates(f.doc)

			var titles []string
			for _, id := range f.doc.Songs {
				titles = append(titles, f.doc.Song(id).Title)
			}
			sort.Strings(titles)

			assert := assert.New(t)
			assert.Len(dropped, 2)
			assert.Equal([]string{"Butterfly", "Kesh"}, titles)
			if want != nil {
				assert.Equal(want, titles)
			}
			want = titles
		})
	}
}

func TestFingerprintHex(t *testing.T) {
	f := fixture{model.NewDocument()}
	id := f.song("Kesh", "", model.Section{Measures: f.seq("G")})

	assert.Len(t, FingerprintHex(f.doc, id), 64)
}
