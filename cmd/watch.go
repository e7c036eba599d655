package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/chordchart/logging"
	"github.com/jsphweid/chordchart/util"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
)

var (
	watchInterval time.Duration
	watchQuiet    time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Second, "how often inputs are polled")
	watchCmd.Flags().DurationVar(&watchQuiet, "quiet", 500*time.Millisecond, "how long inputs must stay unchanged before re-rendering")
}

var watchCmd = &cobra.Command{
	Use:   "watch [path] [maxNum]",
	Short: "Re-renders every format when inputs change",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, maxNum, err := inputArgs(args)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, path, maxNum, cfg.OutDir)
	},
}

func watch(ctx context.Context, path string, maxNum int, dir string) error {
	var mu sync.Mutex
	rerender := func() {
		mu.Lock()
		defer mu.Unlock()
		corp, err := loadCorpus(path, maxNum)
		if err != nil {
			logging.Error("load failed", "path", path, "error", err)
			return
		}
		if err := renderAll(ctx, corp.doc, dir); err != nil {
			logging.Error("render failed", "dir", dir, "error", err)
		}
	}

	rerender()
	seen := modTimes(path, maxNum)
	debounced := debounce.New(watchQuiet)
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	logging.Info("watching", "path", path, "interval", watchInterval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := modTimes(path, maxNum)
			if !maps.EqualFunc(seen, now, time.Time.Equal) {
				logging.Debug("inputs changed", "files", len(now))
				seen = now
				debounced(rerender)
			}
		}
	}
}

// modTimes snapshots the modification time of every input file. Files that
// vanish between listing and stat are left out.
func modTimes(path string, maxNum int) map[string]time.Time {
	res := make(map[string]time.Time)
	paths, err := util.GatherInputPaths(path, maxNum)
	if err != nil {
		logging.Warn("could not list inputs", "path", path, "error", err)
		return res
	}
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			res[p] = info.ModTime()
		}
	}
	return res
}
