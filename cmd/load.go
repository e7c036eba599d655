package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jsphweid/chordchart/builder"
	"github.com/jsphweid/chordchart/constants"
	"github.com/jsphweid/chordchart/dedup"
	"github.com/jsphweid/chordchart/file"
	"github.com/jsphweid/chordchart/logging"
	"github.com/jsphweid/chordchart/model"
	"github.com/jsphweid/chordchart/render"
	"github.com/jsphweid/chordchart/util"
	"github.com/spf13/cobra"
)

// corpus is a built, normalized and deduplicated document.
type corpus struct {
	doc     *model.Document
	sources map[int]string
}

// loadCorpus reads every input under path (at most maxNum files, zero for
// all) and builds one document from them.
func loadCorpus(path string, maxNum int) (*corpus, error) {
	paths, err := util.GatherInputPaths(path, maxNum)
	if err != nil {
		return nil, fmt.Errorf("gathering inputs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files under %s", path)
	}

	batch, err := file.LoadAll(paths)
	if err != nil {
		return nil, err
	}
	doc := builder.Build(batch.Events)
	dedup.NormalizeAll(doc)
	dropped := dedup.MergeDuplicates(doc)
	logging.Info("loaded corpus", "files", len(paths), "songs", len(doc.Songs), "duplicates", len(dropped))
	return &corpus{doc: doc, sources: batch.Sources}, nil
}

func renderOptions() render.Options {
	return render.Options{
		TargetWidth:  cfg.TargetWidth,
		PageLines:    cfg.PageLines,
		ScaleDegrees: cfg.ScaleDegrees,
	}
}

// inputArgs reads "<path> [maxNum]".
func inputArgs(args []string) (string, int, error) {
	path := constants.GetInputDir()
	if len(args) > 0 {
		path = args[0]
	}
	maxNum := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return "", 0, fmt.Errorf("max files: %w", err)
		}
		maxNum = n
	}
	return path, maxNum, nil
}

// formatCmd builds a subcommand that renders one format to stdout or --out.
func formatCmd(format render.Format, short string) *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   string(format) + " [path] [maxNum]",
		Short: short,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, format, out)
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return c
}

func runFormat(cmd *cobra.Command, args []string, format render.Format, out string) error {
	path, maxNum, err := inputArgs(args)
	if err != nil {
		return err
	}
	corp, err := loadCorpus(path, maxNum)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return render.Render(w, format, corp.doc, corp.doc.Songs, renderOptions())
}
