package crossvalidation

import (
	"strings"

	"github.com/akugone/kawayC/application/constants"
	"github.com/akugone/kawayC/entities"
)

// Input gathers what the cross-validator compares. Ages are nil when absent.
type Input struct {
	IDName           string
	AddressProofName string
	EstimatedAge     *int
	AgeFromID        *int
}

// TokenMatches reports whether a proof token is corroborated by an id token:
// equal, one contains the other, or at most one edit apart.
func TokenMatches(proofToken, idToken string) bool {
	if proofToken == "" || idToken == "" {
		return false
	}
	if proofToken == idToken {
		return true
	}
	if strings.Contains(proofToken, idToken) || strings.Contains(idToken, proofToken) {
		return true
	}
	return Levenshtein(proofToken, idToken) <= constants.MAX_TOKEN_EDIT_DISTANCE
}

// MatchingTokens counts the tokens of proofName that find a match among the
// tokens of idName.
func MatchingTokens(idName, proofName string) int {
	idTokens := Tokens(idName)
	count := 0
	for _, proofToken := range Tokens(proofName) {
		for _, idToken := range idTokens {
			if TokenMatches(proofToken, idToken) {
				count++
				break
			}
		}
	}
	return count
}

func NameMatch(idName, proofName string) bool {
	return MatchingTokens(idName, proofName) >= constants.MIN_MATCHING_NAME_TOKENS
}

// AgeMatch is false whenever either age is missing.
func AgeMatch(estimated, fromID *int) bool {
	if estimated == nil || fromID == nil {
		return false
	}
	diff := *estimated - *fromID
	if diff < 0 {
		diff = -diff
	}
	return diff <= constants.AGE_TOLERANCE_YEARS
}

func Validate(input Input) entities.ValidationResult {
	nameMatch := NameMatch(input.IDName, input.AddressProofName)
	ageMatch := AgeMatch(input.EstimatedAge, input.AgeFromID)
	return entities.ValidationResult{
		NameMatch: nameMatch,
		AgeMatch:  ageMatch,
		Overall:   nameMatch && ageMatch,
	}
}
