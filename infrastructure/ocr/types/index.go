package types

import (
	"context"

	"github.com/akugone/kawayC/entities"
)

type TextRecognizer interface {
	Recognize(ctx context.Context, img *entities.TextImage) (string, error)
}
