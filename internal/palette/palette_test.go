package palette

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette() Palette {
	return New("Serene coastal sunrise", []Color{
		{Hex: "#F5EFE6", Name: "Background"},
		{Hex: "#2B2D42", Name: "Text"},
		{Hex: "#D9E4EC", Name: "Subtle"},
		{Hex: "#5FA8D3", Name: "Interactive"},
		{Hex: "#F4A259", Name: "Primary"},
	})
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s after %d calls", id, i)
		}
		seen[id] = true
	}
}

func TestNew_CopiesColors(t *testing.T) {
	colors := []Color{{Hex: "#000000", Name: "Ink"}}
	p := New("x", colors)
	colors[0].Hex = "#ffffff"
	assert.Equal(t, "#000000", p.Colors[0].Hex)
	assert.NotEmpty(t, p.ID)
}

func TestValidHex(t *testing.T) {
	assert.True(t, ValidHex("#a1B2c3"))
	assert.False(t, ValidHex("#abc"))
	assert.False(t, ValidHex("a1b2c3"))
	assert.False(t, ValidHex("#a1b2c3 "))
	assert.False(t, ValidHex("#g1b2c3"))
}

func TestParseTheme(t *testing.T) {
	th, ok := ParseTheme(" Dark ")
	assert.True(t, ok)
	assert.Equal(t, Dark, th)
	assert.Equal(t, Light, th.Toggle())
	assert.Equal(t, Dark, Light.Toggle())

	_, ok = ParseTheme("sepia")
	assert.False(t, ok)
}

func TestShareLink_RoundTrip(t *testing.T) {
	p := testPalette()
	link := ShareLink("https://palette.example/app#old", p)
	assert.Equal(t, "https://palette.example/app#palette=F5EFE6,2B2D42,D9E4EC,5FA8D3,F4A259", link)

	decoded, err := DecodeShareLink(link)
	require.NoError(t, err)
	assert.Equal(t, SharedPrompt, decoded.Prompt)
	assert.Equal(t, p.Hexes(), decoded.Hexes())
	assert.NotEqual(t, p.ID, decoded.ID)
}

func TestDecodeShareLink_Fragment(t *testing.T) {
	p, err := DecodeShareLink("#palette=ff0000,00ff00,0000ff,ffffff,000000")
	require.NoError(t, err)
	require.Len(t, p.Colors, 5)

	wantHex := []string{"#ff0000", "#00ff00", "#0000ff", "#ffffff", "#000000"}
	for i, c := range p.Colors {
		assert.Equal(t, wantHex[i], c.Hex)
		assert.Equal(t, "Color "+string(rune('1'+i)), c.Name)
	}
	assert.Equal(t, "Shared Palette", p.Prompt)
}

func TestDecodeShareLink_SingleColor(t *testing.T) {
	p, err := DecodeShareLink("#palette=ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, []Color{{Hex: "#ABCDEF", Name: "Color 1"}}, p.Colors)
}

func TestDecodeShareLink_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"#palette=zzzzzz",
		"#palette=",
		"#palette=ff0000,,00ff00",
		"#palette=ff0000,#00ff00",
		"#palette=fff",
		"#colors=ff0000",
		"https://palette.example/app",
		"palette=ff0000",
	}
	for _, in := range inputs {
		_, err := DecodeShareLink(in)
		var perr *ShareLinkParseError
		if !errors.As(err, &perr) {
			t.Errorf("DecodeShareLink(%q) error = %v, want *ShareLinkParseError", in, err)
		}
	}
}

func TestFind_ExactIDOnly(t *testing.T) {
	a, b := testPalette(), testPalette()
	list := []Palette{a, b}

	got, ok := Find(list, b.ID)
	require.True(t, ok)
	assert.Equal(t, b.ID, got.ID)

	_, ok = Find(list, a.ShortID())
	assert.False(t, ok)
	_, ok = Find(list, strings.ToUpper(a.ID))
	assert.False(t, ok)
	_, ok = Find(list, "")
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	a, b := testPalette(), testPalette()
	list := []Palette{a, b}

	got, err := Lookup(list, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = Lookup(list, "  "+strings.ToUpper(a.ShortID())+" ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = Lookup(list, "")
	assert.ErrorIs(t, err, ErrNoMatch)
	_, err = Lookup(list, "nope")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestLookup_ExactIDBeatsLooseMatches(t *testing.T) {
	list := []Palette{
		{ID: "1712345678901-aaaaaaaa"},
		{ID: "aaaaaaaa"},
		{ID: "ABC-1"},
		{ID: "abc-1"},
	}

	got, err := Lookup(list, "aaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaa", got.ID)

	got, err = Lookup(list, "abc-1")
	require.NoError(t, err)
	assert.Equal(t, "abc-1", got.ID)
}

func TestLookup_Ambiguous(t *testing.T) {
	list := []Palette{
		{ID: "0190c3a2-0000-7000-8000-00001234abcd"},
		{ID: "0190c3a2-1111-7000-8000-11111234abcd"},
	}

	_, err := Lookup(list, "1234abcd")
	var amb *AmbiguousRefError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []string{list[0].ID, list[1].ID}, amb.IDs)

	_, err = Lookup([]Palette{{ID: "ABC-1"}, {ID: "Abc-1"}}, "abc-1")
	assert.ErrorAs(t, err, &amb)
}

func TestShortID_TailOfID(t *testing.T) {
	p := Palette{ID: "0190c3a2-7b1e-7c3d-9f00-1234abcd5678"}
	assert.Equal(t, "abcd5678", p.ShortID())
	assert.Equal(t, "abc", Palette{ID: "abc"}.ShortID())
}
