package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetAppDir(t *testing.T) {
	if runtime.GOOS == "linux" {
		tmpDir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", tmpDir)

		if got, want := GetAppDir(), filepath.Join(tmpDir, "brpalette"); got != want {
			t.Errorf("GetAppDir mismatch. Got %s, want %s", got, want)
		}
	}

	dir := GetAppDir()
	if dir == "" {
		t.Error("GetAppDir returned empty string")
	}
	if !strings.Contains(strings.ToLower(dir), "brpalette") {
		t.Errorf("Expected path to contain 'brpalette', got: %s", dir)
	}
}

func TestStatePaths(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	}

	stateDir := GetStateDir()
	if !strings.HasPrefix(stateDir, GetAppDir()) {
		t.Errorf("StateDir should be under AppDir. StateDir: %s", stateDir)
	}
	for _, p := range []string{GetDBPath(), GetLockPath()} {
		if filepath.Dir(p) != stateDir {
			t.Errorf("%s should live in %s", p, stateDir)
		}
	}
	if !strings.HasSuffix(GetLogsDir(), "logs") {
		t.Errorf("Expected logs path to end with 'logs', got: %s", GetLogsDir())
	}
	if filepath.Dir(GetTokenPath()) != GetAppDir() {
		t.Errorf("token should live in the app dir, got %s", GetTokenPath())
	}
}

func TestEnsureDirs(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "config"))
	}

	if err := EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}

	dirs := []string{GetAppDir(), GetStateDir(), GetLogsDir()}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			t.Errorf("Directory not created: %s", dir)
		} else if err != nil {
			t.Errorf("Error checking directory %s: %v", dir, err)
		} else if !info.IsDir() {
			t.Errorf("Path exists but is not a directory: %s", dir)
		}
	}
}
