package utils

import "strings"

// SplitAndTrim splits value by sep, trims whitespace around each part and
// drops empty parts.
func SplitAndTrim(value string, sep string) []string {
	parts := strings.Split(value, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
