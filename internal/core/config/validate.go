package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/sprintpoker/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks the structure of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateDeck(),
		criterio.Run("theme", c.Theme, knownTheme),
		criterio.Run("export.filename", c.Export.Filename, plainFilename),
		c.validateJira(),
	)
}

// ValidateDeep runs Validate and additionally checks the config file and
// export directory on disk. An empty configPath skips the file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("export.dir", c.Export.Dir, isDirectoryOrNotExist),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	numeric := 0
	for _, card := range c.Cards() {
		if card.IsNumeric() {
			numeric++
		}
	}
	if numeric == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Deck",
			Message:  "deck has no numeric cards; averages will always be N/A",
		})
	}

	if c.Jira.URL != "" && c.Jira.Email == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Jira",
			Item:     "jira.email",
			Message:  "jira.url is set but jira.email is empty; it will be prompted for",
		})
	}

	return warnings
}

func (c *Config) validateDeck() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(c.Deck))
	for i, label := range c.Deck {
		field := fmt.Sprintf("deck[%d]", i)
		trimmed := strings.TrimSpace(label)
		switch {
		case trimmed == "":
			errs = errs.Append(field, errors.New("card label cannot be empty"))
		case seen[trimmed]:
			errs = errs.Append(field, fmt.Errorf("duplicate card %q", trimmed))
		}
		seen[trimmed] = true
	}
	return errs.ToError()
}

func (c *Config) validateJira() error {
	var errs criterio.FieldErrorsBuilder
	if c.Jira.URL != "" {
		if err := httpURL(c.Jira.URL); err != nil {
			errs = errs.Append("jira.url", err)
		}
	}
	if c.Jira.Timeout < 0 {
		errs = errs.Append("jira.timeout", errors.New("must not be negative"))
	}
	if c.Jira.MaxResults < 0 {
		errs = errs.Append("jira.max_results", errors.New("must not be negative"))
	}
	return errs.ToError()
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); ok {
		return nil
	}
	return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
}

func plainFilename(name string) error {
	if name == "" {
		return errors.New("cannot be empty")
	}
	if filepath.Base(name) != name {
		return fmt.Errorf("%q must be a file name, not a path; use export.dir for the directory", name)
	}
	return nil
}

func httpURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must start with http:// or https://")
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // created on export
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}
