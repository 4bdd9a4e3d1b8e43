package fieldparser

import (
	"testing"

	"github.com/akugone/kawayC/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticParser struct {
	name   string
	marker string
}

func (p staticParser) Name() string { return p.name }

func (p staticParser) Parse(string) entities.ExtractedFields {
	return entities.ExtractedFields{Name: p.name}
}

func (p staticParser) Detect(text string) bool { return text == p.marker }

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	parser, ok := registry.For(entities.IDDocument, "")
	require.True(t, ok)
	assert.Equal(t, "id-card", parser.Name())

	parser, ok = registry.For(entities.AddressProofDocument, "")
	require.True(t, ok)
	assert.Equal(t, "attestation", parser.Name())

	_, ok = registry.For(entities.SelfieDocument, "")
	assert.False(t, ok)

	_, err := registry.Parse(entities.SelfieDocument, "text")
	assert.Error(t, err)
}

func TestRegistryPrefersDetectedLayout(t *testing.T) {
	registry := NewRegistry()
	registry.Register(entities.IDDocument, staticParser{name: "passport", marker: "P<FRA"})
	registry.Register(entities.IDDocument, staticParser{name: "residence-permit", marker: "TITRE DE SEJOUR"})

	fields, err := registry.Parse(entities.IDDocument, "TITRE DE SEJOUR")
	require.NoError(t, err)
	assert.Equal(t, "residence-permit", fields.Name)

	fields, err = registry.Parse(entities.IDDocument, "unknown layout")
	require.NoError(t, err)
	assert.Equal(t, "passport", fields.Name)
}
