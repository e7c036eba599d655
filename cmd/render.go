package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsphweid/chordchart/logging"
	"github.com/jsphweid/chordchart/model"
	"github.com/jsphweid/chordchart/render"
	"github.com/jsphweid/chordchart/util"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [path] [maxNum]",
	Short: "Writes every output format to the output directory",
	Long: `Builds the songs under path (a file or a directory, optionally limited to
maxNum files) and writes chart, export, records and report files into the
configured output directory, which is recreated first.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, maxNum, err := inputArgs(args)
		if err != nil {
			return err
		}
		corp, err := loadCorpus(path, maxNum)
		if err != nil {
			return err
		}
		return renderAll(cmd.Context(), corp.doc, cfg.OutDir)
	},
}

// renderAll writes each format concurrently. The document must not change
// while this runs.
func renderAll(ctx context.Context, doc *model.Document, dir string) error {
	if err := util.RecreateOutputDir(dir); err != nil {
		return fmt.Errorf("recreating %s: %w", dir, err)
	}

	opts := renderOptions()
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range render.Formats {
		format := format
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFormat(filepath.Join(dir, format.Filename()), format, doc, opts)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logging.Info("rendered", "dir", dir, "songs", len(doc.Songs), "formats", len(render.Formats))
	return nil
}

func writeFormat(path string, format render.Format, doc *model.Document, opts render.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := render.Render(w, format, doc, doc.Songs, opts); err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
