package queue

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Track represents a single track in a playback queue.
//
// ID and Title are the contract fields: ID is the stable identity used for
// equality, lookups and recency-history membership, Title feeds the
// alphabetical sort key. The remaining fields are opaque payload carried
// through reorderings unchanged.
type Track struct {
	ID       string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

var (
	leadingArticle = regexp.MustCompile(`^(a|an|the)\s+`)
	nonAlphanum    = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// SortKey derives the canonical alphabetical ordering key from a title:
// lower-cased, one leading article (a/an/the) stripped, characters outside
// [a-z0-9\s] removed, whitespace runs collapsed, result trimmed.
// It is a pure function: same title, same key.
func SortKey(title string) string {
	key := strings.ToLower(title)
	key = leadingArticle.ReplaceAllString(key, "")
	key = nonAlphanum.ReplaceAllString(key, "")
	key = whitespaceRun.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}

// SortByTitle returns a copy of tracks ordered by sort key.
// The sort is stable: title ties keep their original relative order.
func SortByTitle(tracks []Track) []Track {
	sorted := make([]Track, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return SortKey(sorted[i].Title) < SortKey(sorted[j].Title)
	})
	return sorted
}
