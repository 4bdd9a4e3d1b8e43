package facematch

import (
	"context"
	"fmt"
	"math"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/application/constants"
	"github.com/akugone/kawayC/entities"
	biometricTypes "github.com/akugone/kawayC/infrastructure/biometric/types"
)

// Matcher embeds face tensors and compares the embeddings.
type Matcher struct {
	Embedder  biometricTypes.Embedder
	Threshold float64
}

func NewMatcher(embedder biometricTypes.Embedder) *Matcher {
	return &Matcher{Embedder: embedder, Threshold: constants.FACE_MATCH_THRESHOLD}
}

// Embed runs the embedding model on tensor. Model failures and degenerate
// outputs are detection errors.
func (m *Matcher) Embed(ctx context.Context, tensor *entities.FaceTensor) ([]float32, error) {
	if tensor == nil || len(tensor.Pixels) == 0 {
		return nil, apperrors.NewDetectionError("face image is empty", nil)
	}
	embedding, err := m.Embedder.Embed(ctx, tensor)
	if err != nil {
		return nil, apperrors.NewDetectionError("could not compute face embedding", err)
	}
	if len(embedding) == 0 || norm(embedding) == 0 {
		return nil, apperrors.NewDetectionError("could not compute face embedding", fmt.Errorf("degenerate embedding of length %d", len(embedding)))
	}
	return embedding, nil
}

// Compare scores two embeddings. The match is valid when the cosine
// similarity is strictly above the threshold; the reported score is clamped
// to [0, 1].
func (m *Matcher) Compare(selfie, id []float32) (entities.FaceMatchResult, error) {
	similarity, err := CosineSimilarity(selfie, id)
	if err != nil {
		return entities.FaceMatchResult{}, apperrors.NewDetectionError("could not compare faces", err)
	}
	return entities.FaceMatchResult{
		Score: clampUnit(similarity),
		Valid: similarity > m.Threshold,
	}, nil
}

// CosineSimilarity returns dot(a, b) / (|a| |b|).
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d != %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty embeddings")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero norm embedding")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

func norm(vector []float32) float64 {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func clampUnit(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}
