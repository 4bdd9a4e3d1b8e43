package fieldparser

import (
	"regexp"
	"strings"

	"github.com/akugone/kawayC/entities"
)

var (
	titledNameRegex  = regexp.MustCompile(`(?:^|[^\p{L}])(?:Monsieur|Madame|Mademoiselle|Mrs|Mr|Ms|Mme|Mlle|M)\.?\s+(\p{Lu}\p{Ll}+(?:-\p{Lu}\p{Ll}+)?)\s+(\p{Lu}[\p{Lu}\p{Ll}'\-]+)`)
	nameBigramRegex  = regexp.MustCompile(`(?:^|[^\p{L}])(\p{Lu}\p{Ll}+)\s+(\p{Lu}[\p{Lu}'\-]+)(?:[^\p{L}]|$)`)
	streetRegex      = regexp.MustCompile(`(?i)(\d{1,4}\s+(?:rue|avenue|boulevard|bd|place|impasse|chemin|all[ée]e|route|quai)\s+[^\n,]+)`)
	labelledDOBRegex = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:n[ée]e?\s+le|date\s+de\s+naissance|date\s+of\s+birth|born\s+on)[^\d]*(\d{2})[./\- ](\d{2})[./\- ](\d{4})`)
)

// AttestationLayout reads free-form address proofs such as utility bills and
// housing attestations.
//
// The name is the first title-prefixed "Firstname SURNAME" found. Without a
// title, the last capitalized bigram whose first name is not already part of
// the retained name wins, since letterheads usually precede the addressee.
type AttestationLayout struct{}

func (AttestationLayout) Name() string {
	return "attestation"
}

func (AttestationLayout) Parse(text string) entities.ExtractedFields {
	fields := entities.ExtractedFields{
		Name: attestationName(splitLines(text)),
	}

	if match := streetRegex.FindStringSubmatch(text); match != nil {
		fields.Address = cleanValue(match[1])
	}
	if match := labelledDOBRegex.FindStringSubmatch(text); match != nil {
		fields.DateOfBirth = formatDate(match[1], match[2], match[3])
	}

	return fields
}

func attestationName(lines []string) string {
	for _, line := range lines {
		if match := titledNameRegex.FindStringSubmatch(line); match != nil {
			return match[1] + " " + match[2]
		}
	}

	name := ""
	for _, line := range lines {
		match := nameBigramRegex.FindStringSubmatch(line)
		if match == nil || strings.Contains(strings.ToLower(name), strings.ToLower(match[1])) {
			continue
		}
		name = match[1] + " " + match[2]
	}
	return name
}
