package validators

import "strings"

// SanitizeString trims input and caps it at maxLen characters without
// splitting a multi-byte rune.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	n := 0
	for i := range trimmed {
		if n == maxLen {
			return trimmed[:i]
		}
		n++
	}
	return trimmed
}
