// Package mention extracts @username references from comment and article
// text. Usernames are 3 to 30 characters of lowercase letters, digits and
// underscores, matching the registration rules.
package mention

import (
	"regexp"
	"strings"
)

var pattern = regexp.MustCompile(`(^|[^\w@])@([a-z0-9_]{3,30})\b`)

// Extract returns the unique usernames mentioned in text, in first-seen
// order, without the @ prefix. Matching is case-insensitive; results are
// lowercased. Email-like tokens (a@b) do not match.
func Extract(text string) []string {
	matches := pattern.FindAllStringSubmatch(strings.ToLower(text), -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var usernames []string
	for _, m := range matches {
		name := m[2]
		if seen[name] {
			continue
		}
		seen[name] = true
		usernames = append(usernames, name)
	}
	return usernames
}
