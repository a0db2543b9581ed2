package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tagdoc/internal/config"
	"tagdoc/internal/discover"
	"tagdoc/internal/model"
)

// loadConfig builds the run configuration: defaults, then the config file,
// then any flag the user set explicitly.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.New()
	if o.configFile != "" {
		if err := cfg.LoadFile(o.configFile); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("since") {
		cfg.Tags.Since = o.since
	}
	if flags.Changed("author") {
		cfg.Tags.Author = o.author
	}
	if flags.Changed("tag") {
		extra, err := parseTagFlags(o.tags)
		if err != nil {
			return nil, err
		}
		cfg.Tags.Extra = extra
	}
	if flags.Changed("ext") {
		cfg.Options.Extension = o.ext
	}
	if flags.Changed("recursive") {
		cfg.Options.Recursive = o.recursive
	}
	if flags.Changed("exclude") {
		cfg.Options.Exclude = parseCommaSeparated(o.exclude)
	}
	if flags.Changed("jobs") {
		cfg.Options.Jobs = o.jobs
	}
	if flags.Changed("locator") {
		cfg.Options.Locator = o.locator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func discoverOptions(cfg *config.Config) discover.Options {
	return discover.Options{
		Extension: cfg.NormalizedExtension(),
		Recursive: cfg.Options.Recursive,
		Exclude:   cfg.Options.Exclude,
	}
}

// parseTagFlags turns "name=value" pairs into tags, keeping their order.
func parseTagFlags(values []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimPrefix(strings.TrimSpace(name), "@")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --tag %q (want name=value)", v)
		}
		tags = append(tags, model.Tag{Name: name, Value: strings.TrimSpace(value)})
	}
	return tags, nil
}

// parseCommaSeparated splits a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
