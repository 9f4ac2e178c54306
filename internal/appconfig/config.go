// Package appconfig manages application configuration and runtime file paths.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/treykane/sshconfgen/internal/util"
)

// PingConfig tunes the reachability probe used by LocalPing conditions.
type PingConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	Attempts       int `yaml:"attempts"`
}

// Config holds application-level configuration. Empty path fields fall back
// to the conventional locations under the user's home directory.
type Config struct {
	// FragmentDir is the directory scanned for fragment files.
	// Defaults to ~/.ssh/conf.d.
	FragmentDir string `yaml:"fragment_dir"`
	// OutputPath is the generated config file. Defaults to ~/.ssh/config.
	OutputPath string `yaml:"output_path"`
	// Extension selects which files in FragmentDir are fragments.
	Extension   string     `yaml:"extension"`
	PollSeconds int        `yaml:"poll_seconds"`
	Ping        PingConfig `yaml:"ping"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Extension:   ".sshconf",
		PollSeconds: util.DefaultPollSeconds,
		Ping: PingConfig{
			TimeoutSeconds: 1,
			Attempts:       util.PingAttempts,
		},
	}
}

// ConfigDir returns the application config directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/sshconfgen.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sshconfgen"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".config", "sshconfgen"), nil
}

// EventsFilePath returns the full path to events.jsonl.
func EventsFilePath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "events.jsonl"), nil
}

// Load reads config.yaml from the config directory.
// If the file doesn't exist, creates it with defaults.
func Load() (Config, error) {
	d, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return Config{}, err
	}
	path := filepath.Join(d, "config.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Extension == "" {
		cfg.Extension = ".sshconf"
	}
	if cfg.PollSeconds <= 0 {
		cfg.PollSeconds = util.DefaultPollSeconds
	}
	if cfg.Ping.TimeoutSeconds <= 0 {
		cfg.Ping.TimeoutSeconds = 1
	}
	if cfg.Ping.Attempts <= 0 {
		cfg.Ping.Attempts = util.PingAttempts
	}
	return cfg, nil
}

// Save writes config to config.yaml.
func Save(cfg Config) error {
	d, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return err
	}
	path := filepath.Join(d, "config.yaml")
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ResolvePaths fills the configured fragment directory and output path,
// defaulting to ~/.ssh/conf.d and ~/.ssh/config. Both directories must
// already exist; a missing one is an unrecoverable setup error.
func ResolvePaths(cfg Config) (fragmentDir, outputPath string, err error) {
	fragmentDir = cfg.FragmentDir
	outputPath = cfg.OutputPath
	if fragmentDir != "" && outputPath != "" {
		return fragmentDir, outputPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("resolve home dir: %w", err)
	}
	sshDir := filepath.Join(home, ".ssh")
	if fi, statErr := os.Stat(sshDir); statErr != nil || !fi.IsDir() {
		return "", "", fmt.Errorf("ssh directory does not exist: %s", sshDir)
	}
	if fragmentDir == "" {
		fragmentDir = filepath.Join(sshDir, "conf.d")
	}
	if outputPath == "" {
		outputPath = filepath.Join(sshDir, "config")
	}
	return fragmentDir, outputPath, nil
}
