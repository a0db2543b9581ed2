package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tagdoc/internal/discover"
	"tagdoc/internal/report"
	"tagdoc/internal/tagger"
)

var errFilesFailed = errors.New("some files could not be processed")

func newApplyCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply [flags] <file.java|directory>...",
		Short: "Insert missing tags and rewrite files in place",
		Long: `Insert the configured tags into every matching file. With --dry-run the
changes are printed as unified diffs and nothing is written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.Options.DryRun = dryRun
			}
			if len(cfg.TagList()) == 0 {
				return fmt.Errorf("nothing to insert: set --since, --author or --tag")
			}

			files, err := discover.Find(args, discoverOptions(cfg))
			if err != nil {
				return err
			}
			t, err := tagger.New(cfg, opts.logger)
			if err != nil {
				return err
			}

			sum := t.Run(cmd.Context(), files)
			printer := report.New(cmd.OutOrStdout(), opts.verbose)
			if cfg.Options.DryRun {
				if err := printer.Diffs(sum); err != nil {
					return err
				}
			}
			if err := printer.Summary(sum, report.ModeApply); err != nil {
				return err
			}
			if sum.Failed() {
				return errFilesFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print diffs instead of writing files")
	return cmd
}
