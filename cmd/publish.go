package cmd

import (
	"github.com/jsphweid/chordchart/db"
	"github.com/jsphweid/chordchart/render"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish [path] [maxNum]",
	Short: "Writes the song records to DynamoDB",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, maxNum, err := inputArgs(args)
		if err != nil {
			return err
		}
		corp, err := loadCorpus(path, maxNum)
		if err != nil {
			return err
		}

		client, err := db.NewClient(cfg.DynamoEndpoint, cfg.DynamoRegion)
		if err != nil {
			return err
		}
		records := render.BuildRecords(corp.doc, corp.doc.Songs)
		_, err = db.Publish(cmd.Context(), client, cfg.DynamoTable, records)
		return err
	},
}
