// Package layout arranges the measures of a song into aligned chart rows.
package layout

import (
	"regexp"
	"strings"

	"github.com/jsphweid/chordchart/model"
	"github.com/jsphweid/chordchart/util"
	"github.com/mattn/go-runewidth"
)

var entity = regexp.MustCompile(`&#x[0-9A-Fa-f]+;`)

// ambiguous-width runes such as ¦ and ¹ count as one column everywhere
var width = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

var endingMarkers = []string{"¹", "²", "³", "⁴"}

const (
	repeatSign = "/"
	brokenBar  = "¦"
)

type Options struct {
	// lines are padded out to this many columns; zero disables padding
	TargetWidth int

	// renders a chord label, defaults to the label itself
	Label func(*model.Chord) string
}

type Cell struct {
	Column int
	Text   string
}

type Row struct {
	Label string
	Open  bool
	Close bool
	Cells []Cell
}

type Grid struct {
	Columns    int
	LabelWidth int
	Widths     []int
	Rows       []Row
}

// VisibleWidth is the printed width of text, counting each character
// reference as zero since the markers it encodes combine with the
// previous glyph.
func VisibleWidth(text string) int {
	return width.StringWidth(entity.ReplaceAllString(text, ""))
}

// Columns picks the row length for a chart of n measures.
func Columns(n int) int {
	switch {
	case n > 0 && n%10 == 0:
		return 10
	case n > 0 && n%9 == 0:
		return 9
	}
	return 8
}

// MeasureCount counts what a chart shows: every non-leadin measure of the
// main sequences plus the first ending of each section.
func MeasureCount(doc *model.Document, id model.SongID) int {
	n := 0
	for _, pid := range doc.Song(id).Parts {
		for _, sid := range doc.Part(pid).Sections {
			section := doc.Section(sid)
			n += len(visible(doc, section.Measures))
			if len(section.Endings) > 0 {
				n += len(visible(doc, section.Endings[0]))
			}
		}
	}
	return n
}

func visible(doc *model.Document, seq []model.MeasureID) []model.MeasureID {
	var out []model.MeasureID
	for _, m := range seq {
		if !doc.Measure(m).Leadin {
			out = append(out, m)
		}
	}
	return out
}

func Layout(doc *model.Document, id model.SongID, opts Options) Grid {
	if opts.Label == nil {
		opts.Label = func(c *model.Chord) string { return c.Label }
	}
	g := &Grid{Columns: Columns(MeasureCount(doc, id))}

	for _, pid := range doc.Song(id).Parts {
		part := doc.Part(pid)
		label := part.Name
		for _, sid := range part.Sections {
			g.placeSection(doc, doc.Section(sid), label, opts.Label)
			label = ""
		}
	}

	g.Widths = make([]int, g.Columns)
	for i := range g.Widths {
		g.Widths[i] = 1
	}
	g.LabelWidth = 1
	for _, r := range g.Rows {
		g.LabelWidth = util.Max(g.LabelWidth, VisibleWidth(r.Label))
		for _, c := range r.Cells {
			g.Widths[c.Column] = util.Max(g.Widths[c.Column], VisibleWidth(c.Text))
		}
	}
	if opts.TargetWidth > 0 {
		g.Widths = spread(g.Widths, opts.TargetWidth-g.fixedWidth()-util.Sum(g.Widths))
	}
	return *g
}

// label, its gap, both repeat signs and the bars between columns
func (g *Grid) fixedWidth() int {
	return g.LabelWidth + 1 + 2 + (g.Columns - 1) + 2
}

type cursor struct {
	row int
	col int
}

func (g *Grid) newRow(label string, open bool, col int) cursor {
	g.Rows = append(g.Rows, Row{Label: label, Open: open})
	return cursor{row: len(g.Rows) - 1, col: col}
}

// place appends the texts from the cursor on, wrapping full rows, and
// returns the column of the first one.
func (g *Grid) place(cur *cursor, texts []string, marker string) int {
	start := cur.col
	for i, t := range texts {
		if cur.col >= g.Columns {
			*cur = g.newRow("", false, 0)
		}
		if i == 0 {
			t = marker + t
			start = cur.col
		}
		g.Rows[cur.row].Cells = append(g.Rows[cur.row].Cells, Cell{Column: cur.col, Text: t})
		cur.col++
	}
	return start
}

func (g *Grid) placeSection(doc *model.Document, section *model.Section, label string, name func(*model.Chord) string) {
	texts := func(seq []model.MeasureID) []string {
		var out []string
		for _, m := range visible(doc, seq) {
			out = append(out, CellText(doc, m, name))
		}
		return out
	}

	cur := g.newRow(label, section.Repeat, 0)
	g.place(&cur, texts(section.Measures), "")
	if len(section.Endings) == 0 {
		g.Rows[cur.row].Close = section.Repeat
		return
	}

	firstStart := g.place(&cur, texts(section.Endings[0]), endingMarker(0))
	rest := section.Endings[1:]
	restLen := 0
	for _, e := range rest {
		restLen += len(texts(e))
	}
	if cur.col+restLen <= g.Columns {
		for k, e := range rest {
			g.place(&cur, texts(e), endingMarker(k+1))
		}
		return
	}

	g.Rows[cur.row].Close = true
	for k, e := range rest {
		cells := texts(e)
		start := util.Max(util.Min(firstStart, g.Columns-len(cells)), 0)
		cur = g.newRow("", false, start)
		g.place(&cur, cells, endingMarker(k+1))
	}
}

func endingMarker(k int) string {
	if k < len(endingMarkers) {
		return endingMarkers[k]
	}
	return endingMarkers[len(endingMarkers)-1]
}

// CellText renders the chords of one measure.
func CellText(doc *model.Document, id model.MeasureID, name func(*model.Chord) string) string {
	var b strings.Builder
	var prev *model.Chord
	for _, cid := range doc.Measure(id).Chords {
		c := doc.Chord(cid)
		if prev != nil {
			if prev.BrokenBar {
				b.WriteString(brokenBar)
			} else {
				b.WriteByte(' ')
			}
		}
		if prev != nil && prev.Root() == c.Root() {
			b.WriteString(repeatSign)
		} else {
			b.WriteString(name(c))
		}
		prev = c
	}
	return b.String()
}

// spread hands out leftover columns: evenly first, then one each to the
// widest columns that border a narrower one, then left to right.
func spread(widths []int, leftover int) []int {
	out := append([]int(nil), widths...)
	if leftover <= 0 || len(out) == 0 {
		return out
	}
	base, rem := leftover/len(out), leftover%len(out)
	widest := util.Max(0, widths...)
	crowded := func(i int) bool { return widths[i] == widest }

	given := make([]bool, len(out))
	for i := range out {
		out[i] += base
	}
	for i := range out {
		if rem == 0 {
			break
		}
		if crowded(i) && ((i > 0 && !crowded(i-1)) || (i < len(out)-1 && !crowded(i+1))) {
			out[i]++
			given[i] = true
			rem--
		}
	}
	for i := range out {
		if rem == 0 {
			break
		}
		if !given[i] {
			out[i]++
			rem--
		}
	}
	return out
}

// Lines renders the grid as plain text.
func (g Grid) Lines() []string {
	lines := make([]string, 0, len(g.Rows))
	for _, r := range g.Rows {
		var b strings.Builder
		b.WriteString(r.Label)
		b.WriteString(strings.Repeat(" ", g.LabelWidth-VisibleWidth(r.Label)+1))

		cells := map[int]string{}
		last, first := -1, g.Columns
		for _, c := range r.Cells {
			cells[c.Column] = c.Text
			last = util.Max(last, c.Column)
			first = util.Min(first, c.Column)
		}

		switch {
		case r.Open:
			b.WriteString("|:")
		case first == 0:
			b.WriteString("| ")
		default:
			b.WriteString("  ")
		}
		for col := 0; col <= last; col++ {
			text, ok := cells[col]
			b.WriteString(center(text, g.Widths[col]))
			if col == last {
				break
			}
			if ok {
				b.WriteByte('|')
			} else {
				b.WriteByte(' ')
			}
		}
		if r.Close {
			b.WriteString(":|")
		} else if last >= 0 {
			b.WriteString(" |")
		}
		lines = append(lines, b.String())
	}
	return lines
}

// odd padding goes to the right
func center(text string, width int) string {
	pad := width - VisibleWidth(text)
	if pad <= 0 {
		return text
	}
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}
