package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brpalette/brpalette/internal/palette"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "state", "brpalette.db"), filepath.Join(dir, "state", "saved.lock"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetSet(t *testing.T) {
	db := setupTestDB(t)

	_, ok, err := db.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set("k", "v1"))
	require.NoError(t, db.Set("k", "v2"))

	v, ok, err := db.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brpalette.db")

	db, err := Open(path, "")
	require.NoError(t, err)
	require.NoError(t, db.SetTheme(palette.Dark))
	require.NoError(t, db.Close())

	db, err = Open(path, "")
	require.NoError(t, err)
	defer db.Close()

	theme, ok, err := db.Theme()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, palette.Dark, theme)
}

func TestWithTx_Rollback(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Set("k", "before"))

	expectedErr := fmt.Errorf("intentional error")
	err := db.withTx(func(tx *sql.Tx) error {
		if err := setTx(tx, "k", "after"); err != nil {
			return err
		}
		return expectedErr
	})
	if err != expectedErr {
		t.Fatalf("Expected error %v, got %v", expectedErr, err)
	}

	v, _, err := db.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "before", v)
}

func TestUpdate_ErrorLeavesValue(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Set("k", "before"))

	err := db.Update("k", func(v string, ok bool) (string, error) {
		return "", fmt.Errorf("nope")
	})
	assert.Error(t, err)

	v, _, _ := db.Get("k")
	assert.Equal(t, "before", v)
}

func TestTheme_UnknownValueIgnored(t *testing.T) {
	db := setupTestDB(t)

	_, ok, err := db.Theme()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set(KeyTheme, "sepia"))
	_, ok, err = db.Theme()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSavedPalettes(t *testing.T) {
	db := setupTestDB(t)

	saved, err := db.SavedPalettes()
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.NotNil(t, saved)

	p := palette.New("dusk", []palette.Color{{Hex: "#112233", Name: "Ink"}})
	out, err := db.UpdateSaved(func(list []palette.Palette) ([]palette.Palette, error) {
		return append([]palette.Palette{p}, list...), nil
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	saved, err = db.SavedPalettes()
	require.NoError(t, err)
	assert.Equal(t, []palette.Palette{p}, saved)

	raw, _, _ := db.Get(KeySavedPalettes)
	assert.Contains(t, raw, `"prompt":"dusk"`)
	assert.Contains(t, raw, `"hex":"#112233"`)
}

func TestSavedPalettes_CorruptIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Set(KeySavedPalettes, "{broken"))

	saved, err := db.SavedPalettes()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestUpdateSaved_Concurrent(t *testing.T) {
	db := setupTestDB(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := palette.New(fmt.Sprintf("p%d", i), nil)
			_, err := db.UpdateSaved(func(list []palette.Palette) ([]palette.Palette, error) {
				return append([]palette.Palette{p}, list...), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	saved, err := db.SavedPalettes()
	require.NoError(t, err)
	assert.Len(t, saved, n)
}
