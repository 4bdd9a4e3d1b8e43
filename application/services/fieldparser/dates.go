package fieldparser

import (
	"regexp"
	"strings"
)

var (
	numericDateRegex = regexp.MustCompile(`(\d{2})[./\- ](\d{2})[./\- ](\d{4})`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// findDate returns the first dd?mm?yyyy date in text rewritten as dd/mm/yyyy.
func findDate(text string) string {
	match := numericDateRegex.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return formatDate(match[1], match[2], match[3])
}

func formatDate(day, month, year string) string {
	return day + "/" + month + "/" + year
}

func cleanValue(value string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(value, " "))
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
