// Package render writes a normalized document in one of the output formats.
package render

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordchart/constants"
	"github.com/jsphweid/chordchart/model"
)

type Format string

const (
	FormatChart   Format = "chart"
	FormatExport  Format = "export"
	FormatRecords Format = "records"
	FormatReport  Format = "report"
	FormatTable   Format = "table"
)

// Formats lists every format in the order the render command writes them.
var Formats = []Format{FormatChart, FormatExport, FormatRecords, FormatReport}

var extensions = map[Format]string{
	FormatChart:   ".html",
	FormatExport:  ".txt",
	FormatRecords: ".json",
	FormatReport:  ".tsv",
	FormatTable:   ".txt",
}

func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if _, ok := extensions[f]; !ok {
		return "", fmt.Errorf("unknown format %q", s)
	}
	return f, nil
}

// Filename is the default output file name for a format.
func (f Format) Filename() string {
	return string(f) + extensions[f]
}

type Options struct {
	TargetWidth  int
	PageLines    int
	ScaleDegrees bool
}

func DefaultOptions() Options {
	return Options{
		TargetWidth: constants.DefaultTargetWidth,
		PageLines:   constants.DefaultPageLines,
	}
}

// Render writes songs of doc to w in the given format.
func Render(w io.Writer, format Format, doc *model.Document, songs []model.SongID, opts Options) error {
	switch format {
	case FormatChart:
		return Chart(w, doc, songs, opts)
	case FormatExport:
		return Export(w, doc, songs)
	case FormatRecords:
		return Records(w, doc, songs)
	case FormatReport:
		return Report(w, doc, songs)
	case FormatTable:
		return ReportTable(w, doc, songs)
	}
	return fmt.Errorf("unknown format %q", format)
}
