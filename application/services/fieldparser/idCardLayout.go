package fieldparser

import (
	"regexp"
	"strings"

	"github.com/akugone/kawayC/entities"
)

var (
	surnameLabelRegex    = regexp.MustCompile(`(?i)^\s*(?:nom|surname|last\s+name)\s*:\s*(.*)$`)
	givenNamesLabelRegex = regexp.MustCompile(`(?i)^\s*(?:pr[ée]nom\s*(?:\(s\)|s)?|given\s+name(?:\(s\)|s)?|first\s+name(?:\(s\)|s)?)\s*:\s*(.*)$`)
	birthLineRegex       = regexp.MustCompile(`(?i)(?:^|[^\p{L}])n[ée]e?(?:[^\p{L}]|$)|naiss|birth`)
)

// IDCardLayout reads labelled identity cards: one "label: value" pair per
// line for the surname and the given names, and a birth line carrying the
// date. A label with no value on its line takes the next non-empty line.
type IDCardLayout struct{}

func (IDCardLayout) Name() string {
	return "id-card"
}

// Detect reports whether text carries at least one identity card label.
func (IDCardLayout) Detect(text string) bool {
	for _, line := range splitLines(text) {
		if surnameLabelRegex.MatchString(line) || givenNamesLabelRegex.MatchString(line) {
			return true
		}
	}
	return false
}

func (IDCardLayout) Parse(text string) entities.ExtractedFields {
	lines := splitLines(text)
	surname := ""
	givenNames := ""
	dateOfBirth := ""

	for i, line := range lines {
		if surname == "" {
			if match := surnameLabelRegex.FindStringSubmatch(line); match != nil {
				surname = labelValue(match[1], lines, i)
				continue
			}
		}
		if givenNames == "" {
			if match := givenNamesLabelRegex.FindStringSubmatch(line); match != nil {
				givenNames = labelValue(match[1], lines, i)
				continue
			}
		}
		if dateOfBirth == "" && birthLineRegex.MatchString(line) {
			dateOfBirth = findDate(line)
			if dateOfBirth == "" && i+1 < len(lines) {
				dateOfBirth = findDate(lines[i+1])
			}
		}
	}

	return entities.ExtractedFields{
		Name:        joinName(surname, givenNames),
		DateOfBirth: dateOfBirth,
	}
}

func labelValue(inline string, lines []string, index int) string {
	if value := cleanValue(inline); value != "" {
		return value
	}
	for _, next := range lines[index+1:] {
		if value := cleanValue(next); value != "" {
			if strings.Contains(value, ":") {
				return ""
			}
			return value
		}
	}
	return ""
}

func joinName(parts ...string) string {
	present := []string{}
	for _, part := range parts {
		if part != "" {
			present = append(present, part)
		}
	}
	return strings.Join(present, " ")
}
