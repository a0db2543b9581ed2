package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tagdoc/internal/discover"
	"tagdoc/internal/report"
	"tagdoc/internal/tagger"
	"tagdoc/internal/watch"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [flags] <directory>...",
		Short: "Tag files as they are created or saved",
		Long: `Tag every matching file once, then keep watching the directories and
re-apply whenever a file is created or written. Stop with Ctrl-C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(cfg.TagList()) == 0 {
				return fmt.Errorf("nothing to insert: set --since, --author or --tag")
			}
			cfg.Options.DryRun = false

			dopts := discoverOptions(cfg)
			matcher, err := discover.NewMatcher(dopts)
			if err != nil {
				return err
			}
			for _, dir := range args {
				info, err := os.Stat(dir)
				if err != nil {
					return err
				}
				if !info.IsDir() {
					return fmt.Errorf("watch: %s is not a directory", dir)
				}
			}

			t, err := tagger.New(cfg, opts.logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			files, err := discover.Find(args, dopts)
			if err != nil {
				return err
			}
			printer := report.New(cmd.OutOrStdout(), opts.verbose)
			if err := printer.Summary(t.Run(ctx, files), report.ModeApply); err != nil {
				return err
			}

			return runWatcher(ctx, t, matcher, args, cfg.Options.Recursive, debounce, printer, opts)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before a changed file is processed")
	return cmd
}

func runWatcher(ctx context.Context, t *tagger.Tagger, matcher *discover.Matcher, dirs []string,
	recursive bool, debounce time.Duration, printer *report.Printer, opts *rootOptions) error {
	w, err := watch.New(t, matcher, watch.Options{
		Recursive: recursive,
		Debounce:  debounce,
		OnResult: func(res tagger.Result) {
			_ = printer.Result(res, report.ModeApply)
		},
	}, opts.logger)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Run(ctx)
}
