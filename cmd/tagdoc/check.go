package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagdoc/internal/discover"
	"tagdoc/internal/model"
	"tagdoc/internal/report"
	"tagdoc/internal/tagger"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] <file.java|directory>...",
		Short: "Report files whose header lacks a configured tag",
		Long:  "Report files that apply would change. Exits non-zero when any file is missing a tag or fails.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(cfg.TagList()) == 0 {
				return fmt.Errorf("nothing to check: set --since, --author or --tag")
			}
			cfg.Options.DryRun = true

			files, err := discover.Find(args, discoverOptions(cfg))
			if err != nil {
				return err
			}
			t, err := tagger.New(cfg, opts.logger)
			if err != nil {
				return err
			}

			sum := t.Run(cmd.Context(), files)
			if err := report.New(cmd.OutOrStdout(), opts.verbose).Summary(sum, report.ModeCheck); err != nil {
				return err
			}
			if n := sum.Count(model.StatusModified); n > 0 {
				return fmt.Errorf("%d file(s) missing tags", n)
			}
			if sum.Failed() {
				return errFilesFailed
			}
			return nil
		},
	}
}
