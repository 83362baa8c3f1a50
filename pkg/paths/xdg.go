// Package paths provides XDG-compliant path resolution for hookcfg.
//
// Resolution order:
// 1. HOOKCFG_HOME (portable root) → $HOOKCFG_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/hookcfg
// 3. Platform defaults → ~/.config/hookcfg, ~/.local/state/hookcfg
package paths

import (
	"os"
	"path/filepath"
)

const appName = "hookcfg"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if home := os.Getenv("HOOKCFG_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if home := os.Getenv("HOOKCFG_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the hookcfg configuration directory.
// Used for the global hookcfg.toml.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	// HOOKCFG_HOME/config is already app specific.
	if os.Getenv("HOOKCFG_HOME") != "" {
		return base
	}
	return filepath.Join(base, appName)
}

// StateDir returns the hookcfg state directory.
// Used for log files.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	if os.Getenv("HOOKCFG_HOME") != "" {
		return base
	}
	return filepath.Join(base, appName)
}

// LogDir returns the directory log files are written to by default.
func LogDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}
