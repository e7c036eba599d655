// Package dedup cleans up built songs and removes duplicate charts.
package dedup

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/jsphweid/chordchart/logging"
	"github.com/jsphweid/chordchart/model"
	"github.com/zeebo/blake3"
)

// Normalize strips what the builder leaves behind: chordless measures,
// empty endings, endings that are all the same, empty sections and parts.
// Calling it twice is the same as calling it once.
func Normalize(doc *model.Document, id model.SongID) {
	song := doc.Song(id)
	parts := song.Parts[:0]
	for _, pid := range song.Parts {
		if normalizePart(doc, pid) {
			parts = append(parts, pid)
		}
	}
	song.Parts = parts
}

func NormalizeAll(doc *model.Document) {
	for _, id := range doc.Songs {
		Normalize(doc, id)
	}
}

func normalizePart(doc *model.Document, id model.PartID) bool {
	part := doc.Part(id)
	sections := part.Sections[:0]
	for _, sid := range part.Sections {
		if normalizeSection(doc, sid) {
			sections = append(sections, sid)
		}
	}
	part.Sections = sections
	return len(sections) > 0
}

func normalizeSection(doc *model.Document, id model.SectionID) bool {
	section := doc.Section(id)
	section.Measures = withChords(doc, section.Measures)

	endings := section.Endings[:0]
	for _, e := range section.Endings {
		if e = withChords(doc, e); len(e) > 0 {
			endings = append(endings, e)
		}
	}
	section.Endings = endings

	if len(endings) > 0 && allEqual(doc, endings) {
		section.Measures = append(section.Measures, endings[0]...)
		section.Endings = nil
	}
	return len(section.Measures) > 0 || len(section.Endings) > 0
}

func withChords(doc *model.Document, seq []model.MeasureID) []model.MeasureID {
	out := seq[:0]
	for _, m := range seq {
		if !doc.MeasureEmpty(m) {
			out = append(out, m)
		}
	}
	return out
}

func allEqual(doc *model.Document, endings [][]model.MeasureID) bool {
	for _, e := range endings[1:] {
		if !doc.SequencesEqual(endings[0], e) {
			return false
		}
	}
	return true
}

// MergeDuplicates drops every song that equals an earlier one and returns
// the dropped handles.
func MergeDuplicates(doc *model.Document) []model.SongID {
	seen := map[[32]byte][]model.SongID{}
	var kept, dropped []model.SongID

	for _, id := range doc.Songs {
		fp := Fingerprint(doc, id)
		duplicate := false
		for _, other := range seen[fp] {
			if doc.SongsEqual(other, id) {
				duplicate = true
				break
			}
		}
		if duplicate {
			logging.Debug("dropping duplicate song", "title", doc.Song(id).Title, "index", doc.Song(id).Index)
			dropped = append(dropped, id)
			continue
		}
		seen[fp] = append(seen[fp], id)
		kept = append(kept, id)
	}

	doc.Songs = kept
	return dropped
}

// Fingerprint hashes everything song equality looks at, so equal songs
// always share a fingerprint.
func Fingerprint(doc *model.Document, id model.SongID) [32]byte {
	var buf bytes.Buffer
	song := doc.Song(id)
	fmt.Fprintf(&buf, "%s\x00%c%d%t%d\x00%s\x00", song.Title, song.Key, song.Accidental, song.Minor, song.Mode, song.TimeSignature)

	for _, pid := range song.Parts {
		part := doc.Part(pid)
		fmt.Fprintf(&buf, "P%s\x00", part.Name)
		for _, sid := range part.Sections {
			section := doc.Section(sid)
			fmt.Fprintf(&buf, "S%t", section.Repeat)
			writeSequence(&buf, doc, section.Measures)
			for _, e := range section.Endings {
				buf.WriteByte('E')
				writeSequence(&buf, doc, e)
			}
		}
	}
	return blake3.Sum256(buf.Bytes())
}

func FingerprintHex(doc *model.Document, id model.SongID) string {
	fp := Fingerprint(doc, id)
	return hex.EncodeToString(fp[:])
}

func writeSequence(buf *bytes.Buffer, doc *model.Document, seq []model.MeasureID) {
	for _, mid := range seq {
		m := doc.Measure(mid)
		fmt.Fprintf(buf, "M%s\x00", m.TimeSignature)
		for _, cid := range m.Chords {
			c := doc.Chord(cid)
			fmt.Fprintf(buf, "%s\x00%t", c.Label, c.Diminished)
		}
	}
	buf.WriteByte('|')
}
