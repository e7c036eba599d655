package cmd

import "github.com/jsphweid/chordchart/render"

func init() {
	rootCmd.AddCommand(formatCmd(render.FormatExport, "Writes an irealbook:// link with every song"))
}
