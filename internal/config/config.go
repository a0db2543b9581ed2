package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"tagdoc/internal/doctag"
	"tagdoc/internal/model"
	"tagdoc/internal/parser"
)

// Config represents the complete configuration.
type Config struct {
	Tags    TagValues `yaml:"tags" json:"tags" toml:"tags"`
	Options Options   `yaml:"options" json:"options" toml:"options"`
}

// TagValues holds the tag values injected into every file. An empty value
// means the tag is never inserted.
type TagValues struct {
	Since  string      `yaml:"since" json:"since" toml:"since"`
	Author string      `yaml:"author" json:"author" toml:"author"`
	Extra  []model.Tag `yaml:"extra" json:"extra" toml:"extra"`
}

// Options represents run options.
type Options struct {
	Extension string   `yaml:"extension" json:"extension" toml:"extension"`
	Recursive bool     `yaml:"recursive" json:"recursive" toml:"recursive"`
	Exclude   []string `yaml:"exclude" json:"exclude" toml:"exclude"`
	Jobs      int      `yaml:"jobs" json:"jobs" toml:"jobs"`
	DryRun    bool     `yaml:"dryRun" json:"dryRun" toml:"dryRun"`
	Locator   string   `yaml:"locator" json:"locator" toml:"locator"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Options: DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML, JSON or TOML based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing TOML config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	c.merge(&loaded)

	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	if loaded.Tags.Since != "" {
		c.Tags.Since = loaded.Tags.Since
	}
	if loaded.Tags.Author != "" {
		c.Tags.Author = loaded.Tags.Author
	}
	if loaded.Tags.Extra != nil {
		c.Tags.Extra = loaded.Tags.Extra
	}

	if loaded.Options.Extension != "" {
		c.Options.Extension = loaded.Options.Extension
	}
	if loaded.Options.Recursive {
		c.Options.Recursive = true
	}
	if loaded.Options.Exclude != nil {
		c.Options.Exclude = loaded.Options.Exclude
	}
	if loaded.Options.Jobs != 0 {
		c.Options.Jobs = loaded.Options.Jobs
	}
	if loaded.Options.DryRun {
		c.Options.DryRun = true
	}
	if loaded.Options.Locator != "" {
		c.Options.Locator = loaded.Options.Locator
	}
}

// TagList returns the tags to inject in insertion order: since, author, then
// the extra tags. Tags with an empty value are dropped.
func (c *Config) TagList() []model.Tag {
	var tags []model.Tag
	if c.Tags.Since != "" {
		tags = append(tags, model.Tag{Name: "since", Value: c.Tags.Since})
	}
	if c.Tags.Author != "" {
		tags = append(tags, model.Tag{Name: "author", Value: c.Tags.Author})
	}
	for _, t := range c.Tags.Extra {
		if t.Value != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Validate checks tag names, the locator strategy and the job count.
func (c *Config) Validate() error {
	for _, t := range c.TagList() {
		if !doctag.ValidName(t.Name) {
			return fmt.Errorf("tag %q: %w", t.Name, model.ErrInvalidTagFormat)
		}
	}
	if _, err := parser.New(c.Options.Locator); err != nil {
		return err
	}
	if c.Options.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Options.Jobs)
	}
	return nil
}

// NormalizedExtension returns the extension with a leading dot.
func (c *Config) NormalizedExtension() string {
	ext := strings.TrimSpace(c.Options.Extension)
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
