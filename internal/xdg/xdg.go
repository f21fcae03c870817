// Package xdg resolves the XDG base directories used by petway: the config
// dir for config.json and .env, the state dir for the file keyring.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "petway"

// ConfigDir returns $XDG_CONFIG_HOME/petway (default ~/.config/petway),
// creating it with 0700 permissions.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns $XDG_STATE_HOME/petway (default ~/.local/state/petway),
// creating it with 0700 permissions.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", ".local", "state")
}

func ensure(envVar string, fallback ...string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
