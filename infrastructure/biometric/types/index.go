package types

import (
	"context"
	"image"

	"github.com/akugone/kawayC/entities"
)

// Embedder maps a face tensor to an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, tensor *entities.FaceTensor) ([]float32, error)
}

// FaceDetector returns the bounding boxes of the faces in frame, in
// detection order.
type FaceDetector interface {
	Detect(ctx context.Context, frame *entities.Frame) ([]image.Rectangle, error)
}

// AgeModel predicts an age in years for the face inside frame.
type AgeModel interface {
	Predict(ctx context.Context, frame *entities.Frame, face image.Rectangle) (float64, error)
}

// Models is the set of loaded networks shared by all stages of a run.
type Models struct {
	Embedder Embedder
	Detector FaceDetector
	Age      AgeModel
}
