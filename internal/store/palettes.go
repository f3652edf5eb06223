package store

import (
	"encoding/json"
	"fmt"

	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/utils"
)

// SavedPalettes returns the saved collection, newest first. A corrupt value is
// logged and treated as empty.
func (s *DB) SavedPalettes() ([]palette.Palette, error) {
	raw, ok, err := s.Get(KeySavedPalettes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []palette.Palette{}, nil
	}
	return decodeSaved(raw), nil
}

// UpdateSaved applies fn to the saved collection atomically and returns the
// stored result.
func (s *DB) UpdateSaved(fn func([]palette.Palette) ([]palette.Palette, error)) ([]palette.Palette, error) {
	var out []palette.Palette
	err := s.Update(KeySavedPalettes, func(raw string, ok bool) (string, error) {
		current := []palette.Palette{}
		if ok {
			current = decodeSaved(raw)
		}
		next, err := fn(current)
		if err != nil {
			return "", err
		}
		if next == nil {
			next = []palette.Palette{}
		}
		data, err := json.Marshal(next)
		if err != nil {
			return "", fmt.Errorf("failed to encode saved palettes: %w", err)
		}
		out = next
		return string(data), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Theme returns the persisted theme, if one was stored.
func (s *DB) Theme() (palette.Theme, bool, error) {
	raw, ok, err := s.Get(KeyTheme)
	if err != nil || !ok {
		return "", false, err
	}
	theme, valid := palette.ParseTheme(raw)
	if !valid {
		utils.Debug("Ignoring unknown stored theme %q", raw)
		return "", false, nil
	}
	return theme, true, nil
}

// SetTheme persists theme.
func (s *DB) SetTheme(theme palette.Theme) error {
	return s.Set(KeyTheme, theme.String())
}

func decodeSaved(raw string) []palette.Palette {
	var saved []palette.Palette
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		utils.Debug("Discarding unreadable saved palettes: %v", err)
		return []palette.Palette{}
	}
	if saved == nil {
		saved = []palette.Palette{}
	}
	return saved
}
