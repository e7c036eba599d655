package render

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/jsphweid/chordchart/dedup"
	"github.com/jsphweid/chordchart/model"
)

// RecordID is stable across runs: a name-based UUID over the song's
// structural fingerprint.
func RecordID(doc *model.Document, id model.SongID) string {
	fp := dedup.Fingerprint(doc, id)
	return uuid.NewSHA1(uuid.NameSpaceURL, fp[:]).String()
}

func Records(w io.Writer, doc *model.Document, songs []model.SongID) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(BuildRecords(doc, songs))
}

func BuildRecords(doc *model.Document, songs []model.SongID) []model.Record {
	records := make([]model.Record, 0, len(songs))
	for _, id := range songs {
		records = append(records, BuildRecord(doc, id))
	}
	return records
}

func BuildRecord(doc *model.Document, id model.SongID) model.Record {
	song := doc.Song(id)
	r := model.Record{
		ID:               RecordID(doc, id),
		Index:            song.Index,
		Title:            song.Title,
		Composer:         song.Composer,
		Key:              song.KeyName(),
		Minor:            song.Minor,
		Mode:             song.Mode.String(),
		TimeSignature:    song.TimeSignature,
		MeterChange:      song.MeterChange,
		MeasureDuration:  song.MeasureDuration,
		BeatDuration:     song.BeatDuration,
		BeatsPerMeasure:  song.BeatsPerMeasure,
		LongestIntervals: append([]int{}, song.LongestIntervals...),
	}
	if song.KeySignature != 0 {
		r.KeySignature = string(song.KeySignature)
	}

	for _, pid := range song.Parts {
		part := doc.Part(pid)
		pr := model.PartRecord{Name: part.Name, AutoNamed: part.AutoNamed}
		for _, sid := range part.Sections {
			section := doc.Section(sid)
			sr := model.SectionRecord{Repeat: section.Repeat, Measures: measureRecords(doc, section.Measures)}
			for _, e := range section.Endings {
				sr.Endings = append(sr.Endings, measureRecords(doc, e))
			}
			pr.Sections = append(pr.Sections, sr)
		}
		r.Parts = append(r.Parts, pr)
	}
	return r
}

func measureRecords(doc *model.Document, seq []model.MeasureID) []model.MeasureRecord {
	out := make([]model.MeasureRecord, 0, len(seq))
	for _, id := range seq {
		m := doc.Measure(id)
		mr := model.MeasureRecord{
			Duration:      m.Duration,
			Beats:         m.Beats,
			Notes:         m.Notes,
			Leadin:        m.Leadin,
			TimeSignature: m.TimeSignature,
		}
		for _, cid := range m.Chords {
			c := doc.Chord(cid)
			mr.Chords = append(mr.Chords, model.ChordRecord{
				Label:      c.Label,
				Duration:   c.Duration,
				Diminished: c.Diminished,
				BrokenBar:  c.BrokenBar,
			})
		}
		out = append(out, mr)
	}
	return out
}
