package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Two Sum", "two-sum"},
		{"Merge k Sorted Lists", "merge-k-sorted-lists"},
		{"  Goldman   Sachs  ", "goldman-sachs"},
		{"C++ Tricks!", "c-tricks"},
		{"Find Median (Hard)", "find-median-hard"},
		{"///", "untitled"},
		{"", "untitled"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.name), "input %q", tc.name)
	}
}

func TestGenerateSlugDeterministic(t *testing.T) {
	assert.Equal(t, GenerateSlug("Two Sum"), GenerateSlug("Two Sum"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "google", NormalizeName("  Google "))
	assert.Equal(t, "two sum", NormalizeName("Two Sum"))
}
