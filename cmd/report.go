package cmd

import (
	"github.com/jsphweid/chordchart/render"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write to this file instead of stdout")
	reportCmd.Flags().BoolVar(&reportTable, "table", false, "print a formatted table instead of TSV")
}

var (
	reportOut   string
	reportTable bool
)

var reportCmd = &cobra.Command{
	Use:   "report [path] [maxNum]",
	Short: "Writes a complexity report",
	Long:  `Writes key, time signature, notes per beat and average melodic interval per song.`,
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := render.FormatReport
		if reportTable {
			format = render.FormatTable
		}
		return runFormat(cmd, args, format, reportOut)
	},
}
