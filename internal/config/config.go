// Package config handles loading solidtodo.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/solidtodo/internal/paths"
	"github.com/amonks/solidtodo/todo"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "solidtodo.toml"

// DefaultDateLayout is the layout used to read and print due dates.
const DefaultDateLayout = "02/01/2006"

// Config represents the solidtodo.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Undo    Undo    `toml:"undo"`
	Display Display `toml:"display"`
}

// Storage contains persistence configuration.
type Storage struct {
	// Path is the JSON data file. Relative paths are resolved against the
	// directory of the config file that sets them; "~/" expands to $HOME.
	Path string `toml:"path"`
}

// Undo contains undo history configuration.
type Undo struct {
	// Limit caps the number of undo steps. Zero or less keeps every step.
	Limit int `toml:"limit"`
}

// Display contains console formatting configuration.
type Display struct {
	// DateFormat is a Go time layout for due dates.
	DateFormat string `toml:"date-format"`
}

// Load loads configuration from dir and the global config file, filling in
// defaults for anything neither file sets.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if err := applyDefaults(merged, globalMeta, projectMeta); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	if cfg.Storage.Path != "" {
		resolved, err := resolvePath(filepath.Dir(path), cfg.Storage.Path)
		if err != nil {
			return nil, toml.MetaData{}, err
		}
		cfg.Storage.Path = resolved
	}

	return &cfg, meta, nil
}

func resolvePath(baseDir, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := paths.HomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(value, "~")), nil
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value), nil
	}
	return filepath.Join(baseDir, value), nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Path = mergeString(projectMeta.IsDefined("storage", "path"), projectCfg.Storage.Path, globalCfg.Storage.Path)
	merged.Display.DateFormat = mergeString(projectMeta.IsDefined("display", "date-format"), projectCfg.Display.DateFormat, globalCfg.Display.DateFormat)
	merged.Undo.Limit = globalCfg.Undo.Limit
	if projectMeta.IsDefined("undo", "limit") {
		merged.Undo.Limit = projectCfg.Undo.Limit
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func applyDefaults(cfg *Config, globalMeta, projectMeta toml.MetaData) error {
	if cfg.Storage.Path == "" {
		path, err := paths.DefaultDataFile(todo.DataFile)
		if err != nil {
			return err
		}
		cfg.Storage.Path = path
	}
	if !globalMeta.IsDefined("undo", "limit") && !projectMeta.IsDefined("undo", "limit") {
		cfg.Undo.Limit = todo.DefaultUndoLimit
	}
	if cfg.Display.DateFormat == "" {
		cfg.Display.DateFormat = DefaultDateLayout
	}
	return nil
}
