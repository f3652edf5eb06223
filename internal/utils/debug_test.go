package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	ConfigureDebug(dir)
	t.Cleanup(func() { ConfigureDebug("") })

	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf("debug-2024010%d-120000.log", i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	CleanupLogs(2)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	want := []string{"debug-20240104-120000.log", "debug-20240105-120000.log", "notes.txt"}
	if len(names) != len(want) {
		t.Fatalf("remaining files = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("remaining[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestCleanupLogs_NonPositiveKeepsAll(t *testing.T) {
	dir := t.TempDir()
	ConfigureDebug(dir)
	t.Cleanup(func() { ConfigureDebug("") })

	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("debug-2024010%d-120000.log", i)
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	CleanupLogs(0)

	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		t.Errorf("expected 3 logs to survive, got %d", len(entries))
	}
}

func TestDebug_NoDirIsSilent(t *testing.T) {
	ConfigureDebug("")
	// Must not panic or create files anywhere.
	Debug("nothing to see %d", 1)
}
