package services

import (
	"fmt"
	"strings"

	"petshop-server/database"
)

// Slugify converts a name to a URL-safe slug: lowercase, whitespace runs
// become single hyphens, anything outside [a-z0-9_-] is dropped, repeated
// hyphens collapse and leading/trailing hyphens are trimmed. An empty
// result is allowed; a name made entirely of stripped characters yields
// the empty slug.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.TrimSpace(strings.ToLower(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == ' ' || r == '\t' || r == '\n':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		// All other characters are dropped
	}
	return strings.TrimRight(b.String(), "-")
}

// ExistsFunc probes whether a candidate slug is already taken.
type ExistsFunc func(slug string) (bool, error)

// ResolveSlug finds the first free slug for base, appending -1, -2, ...
// on collision. The result is unique at the time of the probe only; two
// concurrent writers can still race (accepted, see the slug column's
// unique index).
func ResolveSlug(base string, exists ExistsFunc) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// SlugInTable returns an ExistsFunc checking the given model's table,
// excluding excludeID when non-zero (update path: a row keeps its own slug
// on a no-op rename).
func SlugInTable(model interface{}, excludeID uint) ExistsFunc {
	return func(slug string) (bool, error) {
		query := database.DB.Model(model).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
}

// UniqueSlug is the handler-facing helper: normalize the name and resolve
// it against the model's table.
func UniqueSlug(name string, model interface{}, excludeID uint) (string, error) {
	return ResolveSlug(Slugify(name), SlugInTable(model, excludeID))
}
