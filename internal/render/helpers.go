package render

import "strings"

// Slugify normalizes a display string for use as a filename: lowercase,
// anything outside [a-z0-9 _] dropped, spaces turned into underscores, runs
// of underscores collapsed and leading or trailing underscores trimmed.
// Slugify(Slugify(s)) == Slugify(s).
func Slugify(value string) string {
	value = strings.ToLower(value)
	if value == "" {
		return ""
	}

	var builder strings.Builder
	builder.Grow(len(value))

	lastUnderscore := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			builder.WriteRune(r)
			lastUnderscore = false
		case r == ' ' || r == '_':
			if !lastUnderscore && builder.Len() > 0 {
				builder.WriteByte('_')
				lastUnderscore = true
			}
		default:
			// dropped
		}
	}

	return strings.TrimRight(builder.String(), "_")
}
