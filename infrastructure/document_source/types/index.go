package types

import (
	"context"

	"github.com/akugone/kawayC/entities"
)

//go:generate mockgen -source=index.go -destination=../mocks/source.go -package=mocks

// DocumentSource yields the raw bytes of one input document.
type DocumentSource interface {
	Load(ctx context.Context, role entities.DocumentRole) (*entities.DocumentBuffer, error)
}
