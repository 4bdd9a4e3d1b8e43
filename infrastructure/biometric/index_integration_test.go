//go:build integration

package biometric

import (
	"image"
	"math"
	"testing"

	"github.com/akugone/kawayC/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestAgeFromOutput(t *testing.T) {
	buckets := []float64{1, 5, 10, 17.5, 28.5, 40.5, 50.5, 80}

	t.Run("expectation over buckets", func(t *testing.T) {
		age, err := ageFromOutput([]float32{0, 0, 0, 0, 0.5, 0.5, 0, 0}, buckets)
		require.NoError(t, err)
		assert.InDelta(t, 34.5, age, 1e-9)
	})

	t.Run("unnormalised scores", func(t *testing.T) {
		age, err := ageFromOutput([]float32{0, 0, 0, 0, 2, 0, 0, 0}, buckets)
		require.NoError(t, err)
		assert.InDelta(t, 28.5, age, 1e-9)
	})

	t.Run("regression output", func(t *testing.T) {
		age, err := ageFromOutput([]float32{41.2}, nil)
		require.NoError(t, err)
		assert.InDelta(t, 41.2, age, 1e-4)
	})

	t.Run("size mismatch", func(t *testing.T) {
		_, err := ageFromOutput([]float32{1, 0}, buckets)
		assert.Error(t, err)
	})

	t.Run("no mass", func(t *testing.T) {
		_, err := ageFromOutput(make([]float32, len(buckets)), buckets)
		assert.Error(t, err)
	})
}

func TestNormalizeEmbedding(t *testing.T) {
	embedding := normalizeEmbedding([]float32{3, 4})
	assert.InDelta(t, 0.6, embedding[0], 1e-6)
	assert.InDelta(t, 0.8, embedding[1], 1e-6)

	zero := normalizeEmbedding([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)

	var sum float64
	for _, v := range normalizeEmbedding([]float32{1, 2, 3, 4}) {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1, math.Sqrt(sum), 1e-6)
}

func TestFrameToMat(t *testing.T) {
	frame := &entities.Frame{Width: 4, Height: 2, BGR: make([]byte, 4*2*3)}
	img, err := frameToMat(frame)
	require.NoError(t, err)
	defer img.Close()
	assert.Equal(t, 4, img.Cols())
	assert.Equal(t, 2, img.Rows())

	_, err = frameToMat(&entities.Frame{Width: 4, Height: 2, BGR: make([]byte, 5)})
	assert.Error(t, err)
}

func TestFaceRegionWithPaddingIsClipped(t *testing.T) {
	img := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC3)
	defer img.Close()

	region := faceRegionWithPadding(img, image.Rect(0, 0, 50, 50))
	defer region.Close()

	assert.Equal(t, 60, region.Cols())
	assert.Equal(t, 60, region.Rows())
}

func TestLoadModelsMissingFiles(t *testing.T) {
	_, err := NewYuNetDetector(GetDefaultYuNetConfig("/nonexistent/yunet.onnx"))
	assert.Error(t, err)

	_, err = NewFaceNetRecognizer(GetDefaultFaceNetConfig("/nonexistent/facenet.onnx"))
	assert.Error(t, err)
}
