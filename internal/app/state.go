package app

import "github.com/brpalette/brpalette/internal/palette"

// Notification is the latest user-facing message. Seq increases with every
// notification so a renderer can tell a repeat of the same text from a new one.
type Notification struct {
	Message string
	Seq     uint64
}

// State is a point-in-time copy of the controller state.
type State struct {
	Theme             palette.Theme
	Current           *palette.Palette
	Loading           bool
	VariationsLoading bool
	Error             string
	Variations        []palette.Palette
	Saved             []palette.Palette
	Notification      Notification
}

// Busy reports whether any model request is in flight.
func (s State) Busy() bool {
	return s.Loading || s.VariationsLoading
}

// IsSaved reports whether a palette with id is in the saved collection.
func (s State) IsSaved(id string) bool {
	for _, p := range s.Saved {
		if p.ID == id {
			return true
		}
	}
	return false
}

// CurrentSaved reports whether the current palette is already saved.
func (s State) CurrentSaved() bool {
	return s.Current != nil && s.IsSaved(s.Current.ID)
}
