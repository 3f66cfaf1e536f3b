package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]Slug{
		"Crème Brûlée Café":  "creme-brulee-cafe",
		"  Hello  World 2 ":  "hello-world-2",
		"Tom's Diner & Bar":  "tom-s-diner-bar",
		"!!!":                "store",
		"居酒屋":                "store",
		"UPPER-case--Dashes": "upper-case-dashes",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestDisambiguate(t *testing.T) {
	base := Slug("maple")
	assert.Equal(t, Slug("maple"), base.Disambiguate(nil))
	assert.Equal(t, Slug("maple"), base.Disambiguate([]string{"maple-2", "maplewood"}), "base itself is free")
	assert.Equal(t, Slug("maple-2"), base.Disambiguate([]string{"maple"}))
	assert.Equal(t, Slug("maple-8"), base.Disambiguate([]string{"maple", "maple-2", "maple-7"}))
	assert.Equal(t, Slug("maple-2"), base.Disambiguate([]string{"maple", "maple-3x", "maple-bar-9"}))
}

func TestNewStore(t *testing.T) {
	store, err := NewStore("  Maple  ", " cozy ", []string{"Wifi", " Wifi", ""}, -79.4, 43.7, "maple.jpg")
	require.NoError(t, err)
	assert.Equal(t, StoreName("Maple"), store.Name)
	assert.Equal(t, Description("cozy"), store.Description)
	assert.Equal(t, []string{"Wifi"}, store.Tags.Strings())
	assert.Equal(t, Location{Lng: -79.4, Lat: 43.7}, store.Location)
	assert.Empty(t, store.ID)
	assert.Empty(t, store.Slug)

	manyTags := make([]string, 0, maxTags+1)
	for i := 0; i <= maxTags; i++ {
		manyTags = append(manyTags, strings.Repeat("t", i+1))
	}

	invalid := map[string]func() (Store, error){
		"empty name":    func() (Store, error) { return NewStore(" ", "", nil, 0, 0, "") },
		"long name":     func() (Store, error) { return NewStore(strings.Repeat("a", maxStoreNameRunes+1), "", nil, 0, 0, "") },
		"latitude":      func() (Store, error) { return NewStore("a", "", nil, 0, 91, "") },
		"longitude":     func() (Store, error) { return NewStore("a", "", nil, -181, 0, "") },
		"photo path":    func() (Store, error) { return NewStore("a", "", nil, 0, 0, "../etc/passwd") },
		"hidden photo":  func() (Store, error) { return NewStore("a", "", nil, 0, 0, ".env") },
		"too many tags": func() (Store, error) { return NewStore("a", "", manyTags, 0, 0, "") },
		"long tag":      func() (Store, error) { return NewStore("a", "", []string{strings.Repeat("t", maxTagRunes+1)}, 0, 0, "") },
		"long describe": func() (Store, error) { return NewStore("a", strings.Repeat("d", maxDescriptionRunes+1), nil, 0, 0, "") },
	}
	for name, build := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := build()
			assert.ErrorIs(t, err, ErrInvalidStore)
		})
	}

	withURL, err := NewStore("a", "", nil, 0, 0, "https://cdn.example.com/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, PhotoRef("https://cdn.example.com/a.jpg"), withURL.Photo)
}
