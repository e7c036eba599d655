package cmd

import (
	"os"

	"github.com/jsphweid/chordchart/config"
	"github.com/jsphweid/chordchart/constants"
	"github.com/jsphweid/chordchart/logging"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "chordchart",
	Short: "Chord charts from notation event streams",
	Long: `chordchart builds song trees from notation event streams (.evt text
files or standard MIDI files) and renders them as an HTML chord chart, a
chart-app export link, JSON records or a complexity report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logging.InitLogger(logging.ParseLevel(cfg.LogLevel), logging.ParseFormat(cfg.LogFormat), os.Stderr)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.DefaultConfigFile, "path to a YAML config file")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
