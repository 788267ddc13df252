// Package config handles configuration loading and validation for sprintpoker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/sprintpoker/internal/core/export"
	"github.com/colonyops/sprintpoker/internal/core/poker"
	"github.com/colonyops/sprintpoker/internal/core/styles"
)

// DefaultDeck is the card set offered when the config does not set one.
var DefaultDeck = []string{"0", "0.5", "1", "2", "3", "5", "8", "13", "20", "40", "100", "?", "∞", "☕"}

const (
	DefaultExportFilename = export.FileName
	DefaultJiraTimeout    = 15 * time.Second
)

// Config holds the application configuration.
type Config struct {
	User   string       `yaml:"user"`  // default voter name
	Deck   []string     `yaml:"deck"`  // card labels in display order
	Theme  string       `yaml:"theme"` // built-in theme name
	Export ExportConfig `yaml:"export"`
	Jira   JiraConfig   `yaml:"jira"`
}

// ExportConfig controls where the summary is written.
type ExportConfig struct {
	Dir      string `yaml:"dir"`      // empty means the working directory
	Filename string `yaml:"filename"` // markdown file name
}

// JiraConfig holds the non-secret defaults for the Jira import. The API token
// is never read from the config file.
type JiraConfig struct {
	URL        string        `yaml:"url"`
	Email      string        `yaml:"email"`
	JQL        string        `yaml:"jql"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxResults int           `yaml:"max_results"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Deck:  append([]string(nil), DefaultDeck...),
		Theme: styles.DefaultTheme,
		Export: ExportConfig{
			Filename: DefaultExportFilename,
		},
		Jira: JiraConfig{
			Timeout: DefaultJiraTimeout,
		},
	}
}

// Load reads configuration from the given path and validates it. If
// configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses the config file and fills in defaults without validating.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if len(c.Deck) == 0 {
		c.Deck = defaults.Deck
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Export.Filename == "" {
		c.Export.Filename = defaults.Export.Filename
	}
	if c.Jira.Timeout == 0 {
		c.Jira.Timeout = defaults.Jira.Timeout
	}
}

// Cards returns the deck as vote values.
func (c *Config) Cards() []poker.Value {
	cards := make([]poker.Value, 0, len(c.Deck))
	for _, label := range c.Deck {
		cards = append(cards, poker.ParseValue(label))
	}
	return cards
}

// ExportPath returns the path of the markdown summary.
func (c *Config) ExportPath() string {
	return filepath.Join(c.Export.Dir, c.Export.Filename)
}
