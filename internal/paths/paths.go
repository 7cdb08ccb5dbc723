// Package paths resolves configuration and data directory locations for the
// riverlog CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative default directory names.
const (
	DefaultConfigDirName = ".riverlog"
	DefaultDataDirName   = ".riverlog-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "RIVERLOG_CONFIG_DIR"
	EnvDataDir   = "RIVERLOG_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/riverlog (fallback ~/.config/riverlog)
// macOS:   ~/Library/Application Support/riverlog
// Windows: %APPDATA%/riverlog
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "riverlog"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "riverlog"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "riverlog"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > RIVERLOG_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > RIVERLOG_DATA_DIR env > $(CWD)/.riverlog-db.
//
// The CWD-relative default keeps a freshly unpacked checkout self-contained:
// running riverlog with no configuration stores everything next to where it
// was invoked.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
