package task

import "strings"

// ParseTags splits a comma-separated tag string, trimming each entry and
// dropping empty segments. Order is preserved.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	return tags
}

// JoinTags renders tags the way the edit form pre-fills them.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
