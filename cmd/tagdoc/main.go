// tagdoc inserts missing @since and @author tags into the Javadoc header of
// the first type declared in each Java source file.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configFile string
	since      string
	author     string
	tags       []string
	ext        string
	recursive  bool
	exclude    string
	jobs       int
	locator    string
	colorMode  string
	verbose    bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tagdoc",
		Short: "Insert missing Javadoc tags into Java sources",
		Long: `tagdoc finds the Javadoc block of the first type declared in each file
and adds the configured @since, @author and extra tags when they are missing.
Files that already carry every tag are never rewritten.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyColorMode(opts.colorMode); err != nil {
				return err
			}
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (YAML, JSON or TOML)")
	flags.StringVar(&opts.since, "since", "", "value for the @since tag")
	flags.StringVar(&opts.author, "author", "", "value for the @author tag")
	flags.StringArrayVar(&opts.tags, "tag", nil, "extra tag as name=value (repeatable)")
	flags.StringVar(&opts.ext, "ext", ".java", "source file extension")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "descend into subdirectories")
	flags.StringVar(&opts.exclude, "exclude", "", "glob patterns to skip (comma-separated)")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "files processed in parallel (default: number of CPUs)")
	flags.StringVar(&opts.locator, "locator", "scanner", "header locator (scanner|regexp)")
	flags.StringVar(&opts.colorMode, "color", "auto", "colorize output (auto|on|off)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newApplyCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func applyColorMode(mode string) error {
	switch mode {
	case "auto", "":
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (want auto, on or off)", mode)
	}
	return nil
}
