package cmd

import "github.com/jsphweid/chordchart/render"

func init() {
	rootCmd.AddCommand(formatCmd(render.FormatRecords, "Writes the songs as JSON records"))
}
