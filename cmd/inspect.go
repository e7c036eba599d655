package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordchart/dedup"
	"github.com/jsphweid/chordchart/layout"
	"github.com/jsphweid/chordchart/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Prints the song tree built from an input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		corp, err := loadCorpus(args[0], 0)
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), corp)
		return nil
	},
}

func inspect(w io.Writer, corp *corpus) {
	doc := corp.doc
	label := func(c *model.Chord) string { return c.Label }
	for _, id := range doc.Songs {
		song := doc.Song(id)
		fmt.Fprintf(w, "song %d %q key=%s time=%s source=%s\n", song.Index, song.Title, song.KeyName(), song.TimeSignature, corp.sources[song.Index])
		fmt.Fprintf(w, "  fingerprint %s\n", dedup.FingerprintHex(doc, id))
		for _, pid := range song.Parts {
			part := doc.Part(pid)
			fmt.Fprintf(w, "  part %s auto=%v\n", part.Name, part.AutoNamed)
			for _, sid := range part.Sections {
				section := doc.Section(sid)
				fmt.Fprintf(w, "    section repeat=%v\n", section.Repeat)
				fmt.Fprintf(w, "      %s\n", measures(doc, section.Measures, label))
				for i, e := range section.Endings {
					fmt.Fprintf(w, "      ending %d: %s\n", i+1, measures(doc, e, label))
				}
			}
		}
	}
}

func measures(doc *model.Document, seq []model.MeasureID, label func(*model.Chord) string) string {
	cells := make([]string, 0, len(seq))
	for _, id := range seq {
		text := layout.CellText(doc, id, label)
		if doc.Measure(id).Leadin {
			text = "(" + text + ")"
		}
		cells = append(cells, text)
	}
	return "| " + strings.Join(cells, " | ") + " |"
}
