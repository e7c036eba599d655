package cmd

import "github.com/jsphweid/chordchart/render"

func init() {
	rootCmd.AddCommand(formatCmd(render.FormatChart, "Writes the HTML chord chart"))
}
