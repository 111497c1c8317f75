package recipe

import (
	"regexp"
	"strings"
)

// Separator delimits recipe blocks inside a multi-recipe string. Filters must
// split and join on it without ever truncating mid-block.
const Separator = "\n\n"

var (
	ingredientsRe = regexp.MustCompile(`(?i)Bahan:(.*)`)
	titleRe       = regexp.MustCompile(`(?i)Judul:\s*(.+)`)
)

// SplitBlocks splits a blank-line delimited multi-recipe string into
// individual blocks, dropping empty segments.
func SplitBlocks(s string) []string {
	parts := strings.Split(s, Separator)
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			blocks = append(blocks, p)
		}
	}
	return blocks
}

// JoinBlocks is the inverse of SplitBlocks.
func JoinBlocks(blocks []string) string {
	return strings.Join(blocks, Separator)
}

// BlockIngredients parses the comma-separated `Bahan:` line of a block into a
// lowercase set. Returns an empty set when the block has no Bahan line.
func BlockIngredients(block string) map[string]struct{} {
	set := map[string]struct{}{}
	m := ingredientsRe.FindStringSubmatch(block)
	if m == nil {
		return set
	}
	for _, ing := range strings.Split(m[1], ",") {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing != "" {
			set[ing] = struct{}{}
		}
	}
	return set
}

// BlockTitle extracts the recipe title from a block's `Judul:` line, without
// the trailing loves annotation. Returns "" when no title line exists.
func BlockTitle(block string) string {
	m := titleRe.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	title := m[1]
	if i := strings.Index(title, "(Loved:"); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

// BlockTitles lists the titles of every block in a multi-recipe string.
func BlockTitles(s string) []string {
	blocks := SplitBlocks(s)
	titles := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if t := BlockTitle(b); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// IsDetailBlock reports whether the text contains a full recipe rendering,
// recognized by the `Langkah:` steps label. Callers use it to decide when a
// reply should replace the cached last-result set.
func IsDetailBlock(s string) bool {
	return strings.Contains(s, "Langkah:")
}
