package domain

import "strings"

// NormalizeTags turns a comma separated list into its canonical form:
// trimmed, lowercased, without empties or duplicates, in first-seen order,
// joined with ", ".
func NormalizeTags(raw string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(tok))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return strings.Join(out, ", ")
}

// SplitTags splits a stored tag string into trimmed, non-empty tokens.
func SplitTags(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(tok); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
