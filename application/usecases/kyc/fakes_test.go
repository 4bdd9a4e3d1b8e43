package kyc_usecase

import (
	"context"
	"errors"
	"image"
	"math"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/entities"
)

// Documents are single-byte buffers; fakes key their behaviour on that byte.
const (
	selfieByte    byte = 'S'
	idByte        byte = 'I'
	proofByte     byte = 'P'
	corruptByte   byte = 'X'
	panickingByte byte = '!'
)

type fakePreprocessor struct{}

func (fakePreprocessor) check(data []byte) error {
	if len(data) == 0 || data[0] == corruptByte {
		return apperrors.NewInputError("document is not a supported image", nil)
	}
	return nil
}

func (p fakePreprocessor) FaceTensor(_ context.Context, data []byte) (*entities.FaceTensor, error) {
	if err := p.check(data); err != nil {
		return nil, err
	}
	return &entities.FaceTensor{Width: 1, Height: 1, Channels: 1, Pixels: []float32{float32(data[0])}}, nil
}

func (p fakePreprocessor) TextImage(_ context.Context, data []byte) (*entities.TextImage, error) {
	if err := p.check(data); err != nil {
		return nil, err
	}
	return &entities.TextImage{Width: 1, Height: 1, PNG: []byte{data[0]}}, nil
}

func (p fakePreprocessor) Frame(_ context.Context, data []byte) (*entities.Frame, error) {
	if err := p.check(data); err != nil {
		return nil, err
	}
	return &entities.Frame{Width: 1, Height: 1, BGR: []byte{data[0], 0, 0}}, nil
}

type fakeEmbedder struct {
	embeddings map[byte][]float32
}

func (e fakeEmbedder) Embed(_ context.Context, tensor *entities.FaceTensor) ([]float32, error) {
	embedding, ok := e.embeddings[byte(tensor.Pixels[0])]
	if !ok {
		return nil, errors.New("no embedding")
	}
	return append([]float32(nil), embedding...), nil
}

type fakeDetector struct {
	faces []image.Rectangle
}

func (d fakeDetector) Detect(context.Context, *entities.Frame) ([]image.Rectangle, error) {
	return d.faces, nil
}

type fakeAgeModel struct {
	age float64
}

func (m fakeAgeModel) Predict(context.Context, *entities.Frame, image.Rectangle) (float64, error) {
	return m.age, nil
}

type fakeOCR struct {
	texts map[byte]string
	err   map[byte]error
}

func (o fakeOCR) Recognize(_ context.Context, img *entities.TextImage) (string, error) {
	key := img.PNG[0]
	if key == panickingByte {
		panic("tesseract segfault")
	}
	if err := o.err[key]; err != nil {
		return "", err
	}
	return o.texts[key], nil
}

// embeddingsWithSimilarity returns selfie and id embeddings whose cosine
// similarity is cos.
func embeddingsWithSimilarity(cos float64) map[byte][]float32 {
	return map[byte][]float32{
		selfieByte: {1, 0},
		idByte:     {float32(cos), float32(math.Sqrt(1 - cos*cos))},
	}
}
