package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordchart/constants"
	"github.com/jsphweid/chordchart/model"
	"github.com/jsphweid/chordchart/quantize"
)

const exportScheme = "irealbook://"

var styles = map[string]string{
	"4/4":  "Reel",
	"2/2":  "Reel",
	"2/4":  "Polka",
	"3/4":  "Waltz",
	"6/8":  "Jig",
	"9/8":  "Slip Jig",
	"12/8": "Slide",
	"3/2":  "Hornpipe",
}

const defaultStyle = "Folk"

// Export writes every song as one importable chart-app link.
func Export(w io.Writer, doc *model.Document, songs []model.SongID) error {
	parts := make([]string, 0, len(songs))
	for _, id := range songs {
		parts = append(parts, ExportSong(doc, id))
	}
	_, err := io.WriteString(w, exportScheme+strings.Join(parts, "=")+"\n")
	return err
}

// ExportSong encodes Title=Composer=Style=Key=n=Progression.
func ExportSong(doc *model.Document, id model.SongID) string {
	song := doc.Song(id)
	fields := []string{
		song.Title,
		song.Composer,
		Style(song.TimeSignature),
		exportKey(song),
		"n",
		progression(doc, song),
	}
	return strings.Join(fields, "=")
}

func Style(timeSignature string) string {
	if s, ok := styles[timeSignature]; ok {
		return s
	}
	return defaultStyle
}

func exportKey(song *model.Song) string {
	key := strings.TrimSuffix(song.KeyName(), "m")
	if song.Minor {
		key += "-"
	}
	return key
}

// "4/4" -> "T44", "12/8" -> "T12"
func timeSignatureToken(ts string) string {
	num, denom, ok := strings.Cut(ts, "/")
	if !ok || num == "" || denom == "" {
		return ""
	}
	if len(num) > 1 {
		return "T" + num
	}
	return "T" + num + denom
}

func progression(doc *model.Document, song *model.Song) string {
	var b strings.Builder
	for i, pid := range song.Parts {
		part := doc.Part(pid)
		b.WriteString("[*" + part.Name)
		if i == 0 {
			b.WriteString(timeSignatureToken(song.TimeSignature))
		}
		for j, sid := range part.Sections {
			if j > 0 {
				b.WriteByte('|')
			}
			b.WriteString(exportSection(doc, doc.Section(sid)))
		}
		b.WriteString("]")
	}
	return b.String()
}

func exportSection(doc *model.Document, section *model.Section) string {
	var b strings.Builder
	if section.Repeat {
		b.WriteByte('{')
	}
	b.WriteString(exportMeasures(doc, section.Measures))
	for k, e := range section.Endings {
		if k == 0 {
			b.WriteString("|N1")
		} else {
			fmt.Fprintf(&b, "N%d", k+1)
		}
		b.WriteString(exportMeasures(doc, e))
		if k == 0 && section.Repeat {
			b.WriteByte('}')
		} else if k < len(section.Endings)-1 {
			b.WriteByte('|')
		}
	}
	if section.Repeat && len(section.Endings) == 0 {
		b.WriteByte('}')
	}
	return b.String()
}

func exportMeasures(doc *model.Document, seq []model.MeasureID) string {
	cells := make([]string, 0, len(seq))
	for _, id := range seq {
		m := doc.Measure(id)
		if m.Leadin {
			continue
		}
		cell := quantize.Quantize(doc, id).String()
		cell = strings.ReplaceAll(cell, constants.DiminishedMarker, "o")
		cells = append(cells, timeSignatureToken(m.TimeSignature)+cell)
	}
	return strings.Join(cells, "|")
}
