package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Royal Canin Adult", "royal-canin-adult"},
		{"already a slug", "deluxe-room", "deluxe-room"},
		{"mixed case and digits", "Whiskas 1.2kg Pack", "whiskas-12kg-pack"},
		{"punctuation dropped", "Cat's Best!", "cats-best"},
		{"whitespace runs collapse", "  Full   Grooming \t Package ", "full-grooming-package"},
		{"repeated hyphens collapse", "a--b---c", "a-b-c"},
		{"underscore kept", "promo_code", "promo_code"},
		{"trailing separators trimmed", "Sale! ", "sale"},
		{"leading hyphen trimmed", "-abc", "abc"},
		{"trailing hyphen trimmed", "abc-", "abc"},
		{"hyphens on both edges trimmed", "--deluxe room--", "deluxe-room"},
		{"all stripped yields empty", "!!! ???", ""},
		{"empty input", "", ""},
		{"non-latin dropped", "ラーメン shop", "shop"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

// mapExists builds an ExistsFunc over a fixed set of taken slugs
func mapExists(taken ...string) ExistsFunc {
	set := make(map[string]bool, len(taken))
	for _, s := range taken {
		set[s] = true
	}
	return func(slug string) (bool, error) {
		return set[slug], nil
	}
}

func TestResolveSlug(t *testing.T) {
	t.Run("free base is returned unchanged", func(t *testing.T) {
		slug, err := ResolveSlug("dog-food", mapExists())
		assert.NoError(t, err)
		assert.Equal(t, "dog-food", slug)
	})

	t.Run("first collision gets -1", func(t *testing.T) {
		slug, err := ResolveSlug("dog-food", mapExists("dog-food"))
		assert.NoError(t, err)
		assert.Equal(t, "dog-food-1", slug)
	})

	t.Run("suffixes increment until free", func(t *testing.T) {
		slug, err := ResolveSlug("dog-food", mapExists("dog-food", "dog-food-1", "dog-food-2"))
		assert.NoError(t, err)
		assert.Equal(t, "dog-food-3", slug)
	})

	t.Run("probe error is propagated", func(t *testing.T) {
		boom := func(slug string) (bool, error) {
			return false, assert.AnError
		}
		_, err := ResolveSlug("dog-food", boom)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
