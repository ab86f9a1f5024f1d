package config

import (
	"os"
	"path/filepath"
	"strings"

	"emperror.dev/errors"
	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

type Snapshot struct {
	// If true, `pit snapshot` asks for confirmation before recording.
	Confirm bool
	// If true, untracked files are eligible for snapshots.
	IncludeUntracked bool
}

type Git struct {
	// The git command line (e.g., "git" or "git -c core.quotePath=true").
	Command string
}

type Config struct {
	Snapshot Snapshot
	Git      Git
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		Snapshot: Snapshot{
			Confirm:          true,
			IncludeUntracked: true,
		},
		Git: Git{
			Command: "git",
		},
	}
}

var Pit = Default()

// Load initializes the configuration values.
// It may optionally be called with a list of additional paths to check for the
// config file.
// Returns a boolean indicating whether or not a config file was loaded and an
// error if one occurred.
func Load(paths []string) (bool, error) {
	cfg := Default()
	loaded, err := loadFromFile(&cfg, paths)
	if err != nil {
		return loaded, err
	}
	loadFromEnv(&cfg)
	Pit = cfg
	return loaded, nil
}

func loadFromFile(cfg *Config, paths []string) (bool, error) {
	config := viper.New()

	// Viper has support for various formats, so it supports json, toml, yaml,
	// and more (https://github.com/spf13/viper#reading-config-files).
	config.SetConfigName("config")

	// Reasonable places to look for config files.
	config.AddConfigPath(filepath.Join(xdg.ConfigHome, "pit"))
	config.AddConfigPath("$HOME/.pit")
	if home := os.Getenv("PIT_HOME"); home != "" {
		config.AddConfigPath(home)
	}
	// Add additional custom paths.
	// The primary use case for this is adding repository-specific
	// configuration (e.g., $REPO/.pit/config.yaml).
	for _, path := range paths {
		config.AddConfigPath(path)
	}

	if err := config.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, nil
		}
		return false, errors.WrapIf(err, "failed to read pit config")
	}

	if err := config.Unmarshal(cfg); err != nil {
		return true, errors.WrapIff(err, "failed to parse pit config %q", config.ConfigFileUsed())
	}
	return true, nil
}

func loadFromEnv(cfg *Config) {
	if isTruthy(os.Getenv("PIT_NO_CONFIRM")) {
		cfg.Snapshot.Confirm = false
	}
	if command := os.Getenv("PIT_GIT"); command != "" {
		cfg.Git.Command = command
	}
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
