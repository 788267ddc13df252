package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/sprintpoker/internal/core/config"
)

const appName = "sprintpoker"

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// JiraToken is the Jira API token. It is never read from the config file.
	JiraToken string

	// Config is loaded in the Before hook and available to all commands.
	// ConfigErr holds its validation error; only "config validate" runs
	// with an invalid config.
	Config    *config.Config
	ConfigErr error
}

// ValidConfig returns the loaded config, or the validation error that the
// Before hook recorded.
func (f *Flags) ValidConfig() (*config.Config, error) {
	if f.ConfigErr != nil {
		return nil, fmt.Errorf("invalid config %s: %w", f.ConfigPath, f.ConfigErr)
	}
	return f.Config, nil
}

// GlobalFlags returns the root command flags bound to f.
func GlobalFlags(f *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("SPRINTPOKER_LOG_LEVEL"),
			Value:       "info",
			Destination: &f.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file",
			Sources:     cli.EnvVars("SPRINTPOKER_LOG_FILE"),
			Value:       DefaultLogFile(),
			Destination: &f.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("SPRINTPOKER_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &f.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "jira-token",
			Usage:       "Jira API token (never stored in the config file)",
			Sources:     cli.EnvVars("SPRINTPOKER_JIRA_TOKEN"),
			Destination: &f.JiraToken,
		},
	}
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/sprintpoker/sprintpoker.log
// On Linux: $XDG_STATE_HOME/sprintpoker/sprintpoker.log (defaults to ~/.local/state)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, appName, appName+".log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", appName, appName+".log")
	}

	return filepath.Join(home, ".local", "state", appName, appName+".log")
}
