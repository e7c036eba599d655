package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jsphweid/chordchart/model"
	"github.com/jsphweid/chordchart/util"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

var reportHeaders = []string{"Key", "Time", "Notes/Beat", "Avg Interval", "Title"}

// Complexity summarizes how busy a song is.
type Complexity struct {
	Key           string
	TimeSignature string
	NotesPerBeat  float64
	AvgInterval   float64
	Title         string
}

// Analyze computes the complexity figures of a song. Leadin measures do
// not count.
func Analyze(doc *model.Document, id model.SongID) Complexity {
	song := doc.Song(id)
	notes, beats := 0, 0
	doc.EachMeasure(id, func(mid model.MeasureID) {
		m := doc.Measure(mid)
		if m.Leadin {
			return
		}
		notes += m.Notes
		beats += m.Beats
	})

	c := Complexity{
		Key:           keyWithMode(song),
		TimeSignature: song.TimeSignature,
		AvgInterval:   util.Mean(song.LongestIntervals),
		Title:         song.Title,
	}
	if beats > 0 {
		c.NotesPerBeat = float64(notes) / float64(beats)
	}
	return c
}

func keyWithMode(song *model.Song) string {
	if song.Mode == model.ModeNone {
		return song.KeyName()
	}
	return song.KeyName() + " " + song.Mode.String()
}

func (c Complexity) fields() []string {
	return []string{
		c.Key,
		c.TimeSignature,
		fmt.Sprintf("%.2f", c.NotesPerBeat),
		fmt.Sprintf("%.2f", c.AvgInterval),
		c.Title,
	}
}

// Report writes one tab-separated line per song.
func Report(w io.Writer, doc *model.Document, songs []model.SongID) error {
	for _, id := range songs {
		if _, err := fmt.Fprintln(w, strings.Join(Analyze(doc, id).fields(), "\t")); err != nil {
			return err
		}
	}
	return nil
}

// ReportTable writes the report as a table for the terminal.
func ReportTable(w io.Writer, doc *model.Document, songs []model.SongID) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(reportHeaders...)
	for _, id := range songs {
		t.Row(Analyze(doc, id).fields()...)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
