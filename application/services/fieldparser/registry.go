package fieldparser

import (
	"fmt"
	"sync"

	"github.com/akugone/kawayC/entities"
)

// Parser turns raw OCR text into fields. Parsers never fail: anything they
// cannot locate is left empty.
type Parser interface {
	Name() string
	Parse(text string) entities.ExtractedFields
}

// LayoutDetector is implemented by parsers that can recognise their layout.
type LayoutDetector interface {
	Detect(text string) bool
}

// Registry selects a parser by document role and, when several layouts are
// registered for a role, by the first one that recognises the text.
type Registry struct {
	mutex   sync.RWMutex
	parsers map[entities.DocumentRole][]Parser
}

func NewRegistry() *Registry {
	return &Registry{parsers: map[entities.DocumentRole][]Parser{}}
}

// DefaultRegistry maps the id to the identity card layout and the address
// proof to the attestation layout.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(entities.IDDocument, IDCardLayout{})
	registry.Register(entities.AddressProofDocument, AttestationLayout{})
	return registry
}

func (r *Registry) Register(role entities.DocumentRole, parser Parser) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.parsers[role] = append(r.parsers[role], parser)
}

// For returns the parser to use for text of the given role. The first
// registered parser is the fallback when no layout is recognised.
func (r *Registry) For(role entities.DocumentRole, text string) (Parser, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	candidates := r.parsers[role]
	if len(candidates) == 0 {
		return nil, false
	}
	for _, candidate := range candidates {
		if detector, ok := candidate.(LayoutDetector); ok && detector.Detect(text) {
			return candidate, true
		}
	}
	return candidates[0], true
}

func (r *Registry) Parse(role entities.DocumentRole, text string) (entities.ExtractedFields, error) {
	parser, ok := r.For(role, text)
	if !ok {
		return entities.ExtractedFields{}, fmt.Errorf("no parser registered for %s", role)
	}
	return parser.Parse(text), nil
}
