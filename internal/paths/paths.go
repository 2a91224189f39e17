package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the directories solidtodo keeps under the home directory.
const AppName = "solidtodo"

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// DefaultStateDir returns the default solidtodo state directory.
func DefaultStateDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".local", "state", AppName), nil
}

// DefaultDataFile returns the default location of the todo data file.
func DefaultDataFile(fileName string) (string, error) {
	dir, err := DefaultStateDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, fileName), nil
}

// GlobalConfigPath returns the location of the user's config file.
func GlobalConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}
