package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "brpalette"

// GetAppDir returns the per-user configuration directory.
func GetAppDir() string {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(appData, appName)
	case "darwin": // MacOS
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", appName)
	default: // Linux
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, _ := os.UserHomeDir()
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, appName)
	}
}

// Returns directory for state files
func GetStateDir() string {
	return filepath.Join(GetAppDir(), "state")
}

// Returns directory for logs
func GetLogsDir() string {
	return filepath.Join(GetAppDir(), "logs")
}

// GetDBPath is the sqlite database holding saved palettes and the theme.
func GetDBPath() string {
	return filepath.Join(GetStateDir(), "brpalette.db")
}

// GetLockPath guards read-modify-write of the saved collection.
func GetLockPath() string {
	return filepath.Join(GetStateDir(), "saved.lock")
}

// GetTokenPath holds the bearer token for the local HTTP API.
func GetTokenPath() string {
	return filepath.Join(GetAppDir(), "token")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{GetAppDir(), GetStateDir(), GetLogsDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
