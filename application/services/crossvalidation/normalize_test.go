package crossvalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "accents", input: "Éloïse Hélène", want: "eloise helene"},
		{name: "cedilla and caps", input: "FRANÇOIS", want: "francois"},
		{name: "punctuation removed", input: "Jean-Pierre O'Neil", want: "jeanpierre oneil"},
		{name: "whitespace collapsed", input: "  Jean \t\n DUPONT  ", want: "jean dupont"},
		{name: "digits kept", input: "Louis XIV 2", want: "louis xiv 2"},
		{name: "empty", input: "", want: ""},
		{name: "only symbols", input: "*** // ---", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, input := range []string{"Éloïse Hélène", "M. Jean DUPONT", "  a  b  "} {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "", b: "", want: 0},
		{a: "", b: "dupont", want: 6},
		{a: "dupont", b: "", want: 6},
		{a: "dupont", b: "dupont", want: 0},
		{a: "dupont", b: "dupond", want: 1},
		{a: "kitten", b: "sitting", want: 3},
		{a: "jean", b: "jena", want: 2},
		{a: "marie", b: "mari", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
		})
	}
}

func TestLevenshteinProperties(t *testing.T) {
	words := []string{"", "a", "jean", "dupont", "dupond", "martin", "martine", "éloïse"}
	for _, a := range words {
		assert.Equal(t, 0, Levenshtein(a, a))
		assert.Equal(t, len([]rune(a)), Levenshtein("", a))
		for _, b := range words {
			assert.Equal(t, Levenshtein(a, b), Levenshtein(b, a), "symmetry %q %q", a, b)
			for _, c := range words {
				assert.LessOrEqual(t, Levenshtein(a, c), Levenshtein(a, b)+Levenshtein(b, c), "triangle %q %q %q", a, b, c)
			}
		}
	}
}
