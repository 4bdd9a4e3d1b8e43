package biometric

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/akugone/kawayC/entities"
	"github.com/akugone/kawayC/infrastructure/logger"
	"gocv.io/x/gocv"
)

// AgeNetEstimator predicts an age from a face crop. With Buckets set, the
// network output is read as a probability per bucket and the age is the
// expectation over the bucket midpoints; otherwise the single output is the
// age in years.
type AgeNetEstimator struct {
	net       gocv.Net
	inputSize image.Point
	mean      gocv.Scalar
	buckets   []float64
	mutex     sync.Mutex
}

type AgeNetConfig struct {
	ModelPath  string
	ConfigPath string
	InputSize  int
	Mean       [3]float64
	Buckets    []float64
	Backend    gocv.NetBackendType
	Target     gocv.NetTargetType
}

func NewAgeNetEstimator(config AgeNetConfig) (*AgeNetEstimator, error) {
	net, err := readNet(config.ModelPath, config.ConfigPath, config.Backend, config.Target)
	if err != nil {
		return nil, err
	}

	logger.Info("age model loaded successfully", logger.LoggerOptions{
		Key: "model_info",
		Data: map[string]interface{}{
			"model_path": config.ModelPath,
			"input_size": config.InputSize,
			"buckets":    len(config.Buckets),
		},
	})

	return &AgeNetEstimator{
		net:       net,
		inputSize: image.Pt(config.InputSize, config.InputSize),
		mean:      gocv.NewScalar(config.Mean[0], config.Mean[1], config.Mean[2], 0),
		buckets:   config.Buckets,
	}, nil
}

func (an *AgeNetEstimator) Predict(ctx context.Context, frame *entities.Frame, face image.Rectangle) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	img, err := frameToMat(frame)
	if err != nil {
		return 0, err
	}
	defer img.Close()

	region := faceRegionWithPadding(img, face)
	defer region.Close()
	if region.Empty() {
		return 0, fmt.Errorf("face region is empty")
	}

	blob := gocv.BlobFromImage(region, 1.0, an.inputSize, an.mean, false, false)
	defer blob.Close()

	an.mutex.Lock()
	defer an.mutex.Unlock()

	an.net.SetInput(blob, "")
	output := an.net.Forward("")
	defer output.Close()

	values, err := output.DataPtrFloat32()
	if err != nil {
		return 0, fmt.Errorf("failed to read age output: %w", err)
	}
	return ageFromOutput(values, an.buckets)
}

func ageFromOutput(values []float32, buckets []float64) (float64, error) {
	if len(buckets) == 0 {
		if len(values) != 1 {
			return 0, fmt.Errorf("age regression output has %d values", len(values))
		}
		return float64(values[0]), nil
	}
	if len(values) != len(buckets) {
		return 0, fmt.Errorf("age output has %d values for %d buckets", len(values), len(buckets))
	}

	var weighted, total float64
	for i, p := range values {
		weighted += float64(p) * buckets[i]
		total += float64(p)
	}
	if total <= 0 {
		return 0, fmt.Errorf("age output has no probability mass")
	}
	return weighted / total, nil
}

func (an *AgeNetEstimator) Close() error {
	an.mutex.Lock()
	defer an.mutex.Unlock()
	if an.net.Empty() {
		return nil
	}
	return an.net.Close()
}
