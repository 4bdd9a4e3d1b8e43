package biometric

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/application/constants"
	"github.com/akugone/kawayC/entities"
	"github.com/akugone/kawayC/infrastructure/logger"
	"gocv.io/x/gocv"
)

// FaceNetRecognizer computes face embeddings with a FaceNet ONNX model that
// takes a [1, H, W, 3] float tensor of raw RGB values.
type FaceNetRecognizer struct {
	net       gocv.Net
	inputSize int
	mutex     sync.Mutex
}

// FaceNetConfig holds configuration for FaceNet model
type FaceNetConfig struct {
	ModelPath string
	InputSize int
	Backend   gocv.NetBackendType
	Target    gocv.NetTargetType
}

func GetDefaultFaceNetConfig(modelPath string) FaceNetConfig {
	return FaceNetConfig{
		ModelPath: modelPath,
		InputSize: constants.FACE_TENSOR_SIZE,
		Backend:   gocv.NetBackendDefault,
		Target:    gocv.NetTargetCPU,
	}
}

func NewFaceNetRecognizer(config FaceNetConfig) (*FaceNetRecognizer, error) {
	net, err := readNet(config.ModelPath, "", config.Backend, config.Target)
	if err != nil {
		return nil, err
	}

	logger.Info("face embedder loaded", logger.LoggerOptions{
		Key: "config",
		Data: map[string]interface{}{
			"model_path": config.ModelPath,
			"input_size": fmt.Sprintf("%dx%d", config.InputSize, config.InputSize),
		},
	})

	return &FaceNetRecognizer{net: net, inputSize: config.InputSize}, nil
}

// Embed runs a forward pass and returns the L2-normalised embedding. Calls
// are serialised because a gocv.Net is not safe for concurrent use.
func (fn *FaceNetRecognizer) Embed(ctx context.Context, tensor *entities.FaceTensor) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tensor.Width != fn.inputSize || tensor.Height != fn.inputSize || tensor.Channels != 3 || len(tensor.Pixels) != tensor.Len() {
		return nil, fmt.Errorf("face tensor is %dx%dx%d, model expects %dx%dx3", tensor.Width, tensor.Height, tensor.Channels, fn.inputSize, fn.inputSize)
	}

	input := gocv.NewMatWithSizes([]int{1, tensor.Height, tensor.Width, tensor.Channels}, gocv.MatTypeCV32F)
	defer input.Close()
	data, err := input.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate input tensor: %w", err)
	}
	copy(data, tensor.Pixels)

	fn.mutex.Lock()
	defer fn.mutex.Unlock()

	fn.net.SetInput(input, "")
	output := fn.net.Forward("")
	defer output.Close()

	values, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding: %w", err)
	}
	embedding := make([]float32, len(values))
	copy(embedding, values)

	return normalizeEmbedding(embedding), nil
}

// Close releases resources
func (fn *FaceNetRecognizer) Close() error {
	fn.mutex.Lock()
	defer fn.mutex.Unlock()

	if !fn.net.Empty() {
		if err := fn.net.Close(); err != nil {
			return fmt.Errorf("failed to close FaceNet network: %v", err)
		}
	}
	return nil
}

// readNet loads a network. A missing or unreadable model is a ConfigError.
func readNet(modelPath, configPath string, backend gocv.NetBackendType, target gocv.NetTargetType) (gocv.Net, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return gocv.Net{}, apperrors.NewConfigError("model file not found", err)
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return gocv.Net{}, apperrors.NewConfigError("model config file not found", err)
		}
	}

	net := gocv.ReadNet(modelPath, configPath)
	if net.Empty() {
		return net, apperrors.NewConfigError("model could not be loaded", fmt.Errorf("empty network from %s", modelPath))
	}
	net.SetPreferableBackend(backend)
	net.SetPreferableTarget(target)
	return net, nil
}

func normalizeEmbedding(embedding []float32) []float32 {
	var sum float64
	for _, v := range embedding {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return embedding
	}
	for i := range embedding {
		embedding[i] = float32(float64(embedding[i]) / norm)
	}
	return embedding
}
