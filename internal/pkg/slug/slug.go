package slug

import "strings"

// Make derives a URL-safe slug: lowercase, runs of non-alphanumeric
// characters collapsed to single hyphens, trimmed at both ends.
func Make(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	lastHyphen := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
