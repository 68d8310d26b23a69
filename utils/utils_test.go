package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fixed Window Shroud", "fixed-window-shroud"},
		{"Shrouds & Hoods", "shrouds-and-hoods"},
		{"Café Façade", "cafe-facade"},
		{"  Angled Shroud 45°  ", "angled-shroud-45"},
		{"100% Aluminium", "100percent-aluminium"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateSlug(tt.in), "slug for %q", tt.in)
	}
}

func TestGenerateExcerpt(t *testing.T) {
	content := "## Heading\n\nThis **bold** text links to [our range](https://example.com) of shrouds."
	got := GenerateExcerpt(content, 30)
	assert.Equal(t, "Heading This bold text links to our range of shrouds.", got)
}

func TestGenerateExcerptTruncates(t *testing.T) {
	got := GenerateExcerpt("one two three four five", 3)
	assert.Equal(t, "one two three...", got)
}

func TestIntersectStrings(t *testing.T) {
	got := IntersectStrings([]string{"a", "b", "x"}, []string{"b", "c", "a"})
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestMergeImageUrls(t *testing.T) {
	old := []string{"u1", "u2", "u3"}
	got := MergeImageUrls(old, []string{"u2"}, []string{"u4", "u1"})
	assert.Equal(t, []string{"u1", "u3", "u4"}, got)
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 5, ParseIntDefault("", 5))
	assert.Equal(t, 5, ParseIntDefault("abc", 5))
	assert.Equal(t, 12, ParseIntDefault("12", 5))
}
