package pkg

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile("[^a-z0-9]+")

// GenerateSlug derives the URL-safe slug for a company or problem name.
// The derivation is deterministic: the same name always yields the same slug.
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return "untitled"
	}
	return slug
}

// NormalizeName is the dedup key form of a company name or problem title.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
