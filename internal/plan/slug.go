// internal/plan/slug.go
package plan

import "strings"

// FallbackSlug is returned when slugifying leaves nothing usable.
const FallbackSlug = "client"

// Slugify converts free text into a stable id: lowercase, runs of anything
// outside [a-z0-9] collapsed to a single hyphen, leading/trailing hyphens
// stripped. Never returns an empty string; symbol-only input yields
// FallbackSlug. Idempotent.
func Slugify(value string) string {
	if slug := SlugifyStrict(value); slug != "" {
		return slug
	}
	return FallbackSlug
}

// SlugifyStrict is Slugify without the fallback: symbol-only input yields the
// empty string. Submission validation uses this to reject ids that carry no
// usable characters.
func SlugifyStrict(value string) string {
	var b strings.Builder
	lastHyphen := false

	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}
