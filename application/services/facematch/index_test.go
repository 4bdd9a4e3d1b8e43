package facematch

import (
	"context"
	"errors"
	"math"
	"testing"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	embedding []float32
	err       error
}

func (s stubEmbedder) Embed(context.Context, *entities.FaceTensor) ([]float32, error) {
	return s.embedding, s.err
}

// unitPair builds two unit vectors whose cosine similarity is exactly cos.
func unitPair(cos float64) ([]float32, []float32) {
	return []float32{1, 0}, []float32{float32(cos), float32(math.Sqrt(1 - cos*cos))}
}

func TestCompareThreshold(t *testing.T) {
	tests := []struct {
		name       string
		similarity float64
		wantValid  bool
	}{
		{name: "clear match", similarity: 0.72, wantValid: true},
		{name: "clear mismatch", similarity: 0.40, wantValid: false},
		{name: "just above threshold", similarity: 0.66, wantValid: true},
		{name: "just below threshold", similarity: 0.64, wantValid: false},
		{name: "identical", similarity: 1, wantValid: true},
	}

	matcher := NewMatcher(stubEmbedder{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := unitPair(tt.similarity)
			result, err := matcher.Compare(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.InDelta(t, tt.similarity, result.Score, 1e-6)
		})
	}
}

func TestCompareClampsNegativeSimilarity(t *testing.T) {
	result, err := NewMatcher(stubEmbedder{}).Compare([]float32{1, 0}, []float32{-1, 0})

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.False(t, result.Valid)
}

func TestCompareRejectsDegenerateEmbeddings(t *testing.T) {
	matcher := NewMatcher(stubEmbedder{})
	cases := [][2][]float32{
		{{1, 0}, {1, 0, 0}},
		{{}, {}},
		{{0, 0}, {1, 0}},
	}
	for _, c := range cases {
		_, err := matcher.Compare(c[0], c[1])
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.DetectionError))
	}
}

func TestCosineSimilarityIsSymmetric(t *testing.T) {
	a := []float32{0.3, -0.2, 0.9, 0.1}
	b := []float32{0.25, 0.1, 0.8, -0.4}

	ab, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	ba, err := CosineSimilarity(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
	self, err := CosineSimilarity(a, a)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, self, 1e-9)
}

func TestEmbed(t *testing.T) {
	tensor := &entities.FaceTensor{Width: 1, Height: 1, Channels: 3, Pixels: []float32{1, 2, 3}}

	embedding, err := NewMatcher(stubEmbedder{embedding: []float32{0.6, 0.8}}).Embed(context.Background(), tensor)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.6, 0.8}, embedding)

	_, err = NewMatcher(stubEmbedder{err: errors.New("forward failed")}).Embed(context.Background(), tensor)
	assert.True(t, apperrors.IsKind(err, apperrors.DetectionError))

	_, err = NewMatcher(stubEmbedder{embedding: []float32{0, 0}}).Embed(context.Background(), tensor)
	assert.True(t, apperrors.IsKind(err, apperrors.DetectionError))

	_, err = NewMatcher(stubEmbedder{}).Embed(context.Background(), &entities.FaceTensor{})
	assert.True(t, apperrors.IsKind(err, apperrors.DetectionError))
}
