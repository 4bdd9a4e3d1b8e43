package types

import (
	"context"

	"github.com/akugone/kawayC/entities"
)

// Preprocessor derives model-ready images from raw document bytes. Each call
// decodes the bytes again and honours the EXIF orientation.
type Preprocessor interface {
	FaceTensor(ctx context.Context, data []byte) (*entities.FaceTensor, error)
	TextImage(ctx context.Context, data []byte) (*entities.TextImage, error)
	Frame(ctx context.Context, data []byte) (*entities.Frame, error)
}
