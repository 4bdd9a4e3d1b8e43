package types

import (
	"context"

	"github.com/akugone/kawayC/entities"
)

//go:generate mockgen -source=index.go -destination=../mocks/writer.go -package=mocks

// ArtifactWriter persists the outcome of a run. Exactly one of the two methods
// succeeds per run.
type ArtifactWriter interface {
	WriteVerdict(ctx context.Context, verdict entities.KYCVerdict) error
	WriteFailure(ctx context.Context, message string) error
}
