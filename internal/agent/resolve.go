package agent

import "strings"

// ResolvePlaceholders substitutes every occurrence of each video identifier
// with its real URL. The map must come from the same generation as the
// text; a stale map would rewrite identifiers into the wrong videos.
func ResolvePlaceholders(text string, placeholders PlaceholderMap) string {
	if len(placeholders) == 0 {
		return text
	}
	pairs := make([]string, 0, len(placeholders)*2)
	for id, url := range placeholders {
		pairs = append(pairs, id, url)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
