package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/text/unicode/norm"
)

var slugReplacer = strings.NewReplacer(
	"©", "copyright",
	"®", "registered",
	"™", "trademark",
	"&", "and",
	"@", "at",
	"%", "percent",
	"$", "dollar",
	"£", "pound",
	"€", "euro",
	"¥", "yen",
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug normalizes a name into a URL slug: accents stripped, common
// symbols spelled out, everything else collapsed to hyphens.
func GenerateSlug(name string) string {
	s := slugReplacer.Replace(name)

	// Normalize accents
	t := norm.NFD.String(s)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue // remove accent marks
		}
		b.WriteRune(r)
	}

	s = strings.ToLower(b.String())
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var markdownStrippers = []struct {
	re   *regexp.Regexp
	with string
}{
	{regexp.MustCompile(`#{1,6}\s`), ""},
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "$1"},
	{regexp.MustCompile(`\*(.*?)\*`), "$1"},
	{regexp.MustCompile(`\[(.*?)\]\(.*?\)`), "$1"},
	{regexp.MustCompile("`(.*?)`"), "$1"},
	{regexp.MustCompile(`>\s`), ""},
}

// GenerateExcerpt strips markdown from post content and truncates it to
// maxWords words for list views.
func GenerateExcerpt(content string, maxWords int) string {
	plain := content
	for _, s := range markdownStrippers {
		plain = s.re.ReplaceAllString(plain, s.with)
	}
	plain = strings.Join(strings.Fields(plain), " ")

	words := strings.Fields(plain)
	if len(words) <= maxWords {
		return plain
	}
	return strings.Join(words[:maxWords], " ") + "..."
}

func IsDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	// Fallback
	return strings.Contains(err.Error(), "E11000 duplicate key error")
}

func IntersectStrings(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, x := range b {
		set[x] = struct{}{}
	}
	out := make([]string, 0)
	for _, x := range a {
		if _, ok := set[x]; ok {
			out = append(out, x)
		}
	}
	return out
}

// MergeImageUrls keeps old urls not marked for removal, then appends new
// ones, deduplicating along the way.
func MergeImageUrls(oldUrls, toRemove, toAdd []string) []string {
	removeSet := make(map[string]struct{}, len(toRemove))
	for _, u := range toRemove {
		removeSet[u] = struct{}{}
	}

	final := make([]string, 0, len(oldUrls)+len(toAdd))
	exists := make(map[string]struct{})

	for _, u := range oldUrls {
		if _, shouldRemove := removeSet[u]; !shouldRemove {
			final = append(final, u)
			exists[u] = struct{}{}
		}
	}
	for _, u := range toAdd {
		if _, already := exists[u]; !already {
			final = append(final, u)
			exists[u] = struct{}{}
		}
	}
	return final
}

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
