package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordchart/bucket"
	"github.com/jsphweid/chordchart/chunk"
	"github.com/jsphweid/chordchart/layout"
	"github.com/jsphweid/chordchart/logging"
	"github.com/jsphweid/chordchart/model"
)

const chartHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
h2 { font-family: Courier; } p, pre { font-family: Courier; }
.page { page-break-after: always; }
</style>
</head>
<body>
`

const chartFooter = "</body>\n</html>\n"

// labels keep their character references, only angle brackets are escaped
var escaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Chart writes the songs as an HTML chord chart: an index grouped by key
// followed by every song in title order.
func Chart(w io.Writer, doc *model.Document, songs []model.SongID, opts Options) error {
	var blocks []model.Block
	for _, b := range bucket.ByKey(doc, songs) {
		blocks = append(blocks, model.Block{Title: b.Key, Lines: []string{fmt.Sprintf("<h2>Key of %s</h2>", b.Key)}})
		for _, id := range b.Songs {
			blocks = append(blocks, songBlock(doc, id, opts))
		}
	}
	blocks = append(blocks, model.Block{Title: "All", Lines: []string{"<h2>All Tunes</h2>"}})
	for _, id := range bucket.Alphabetical(doc, songs) {
		blocks = append(blocks, songBlock(doc, id, opts))
	}

	pages := chunk.Paginate(blocks, opts.PageLines)
	logging.Debug("paginated chart", "pages", len(pages), "blocks", chunk.Blocks(blocks, opts.PageLines))

	bw := bufio.NewWriter(w)
	bw.WriteString(chartHeader)
	for _, p := range pages {
		fmt.Fprintf(bw, "<div class=\"page\" id=\"page-%d\">\n", p.Number)
		for _, line := range p.Lines {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
		bw.WriteString("</div>\n")
	}
	bw.WriteString(chartFooter)
	return bw.Flush()
}

func songBlock(doc *model.Document, id model.SongID, opts Options) model.Block {
	song := doc.Song(id)
	title := escaper.Replace(song.Title)
	if song.TimeSignature != "" && !song.MeterChange {
		title = fmt.Sprintf("%s (%s)", title, song.TimeSignature)
	}

	lo := layout.Options{TargetWidth: opts.TargetWidth}
	if opts.ScaleDegrees {
		lo.Label = scaleDegrees(song.KeySignature)
	}
	grid := layout.Layout(doc, id, lo)

	lines := []string{fmt.Sprintf("<p><b>%s</b></p>", title), "<pre>"}
	for _, l := range grid.Lines() {
		lines = append(lines, escaper.Replace(l))
	}
	lines = append(lines, "</pre>")
	return model.Block{Title: song.Title, Lines: lines}
}
