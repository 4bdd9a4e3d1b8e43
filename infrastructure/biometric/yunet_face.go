package biometric

import (
	"context"
	"image"
	"os"
	"sync"
	"time"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/entities"
	"github.com/akugone/kawayC/infrastructure/logger"
	"gocv.io/x/gocv"
)

// yunetScoreColumn is the confidence column of a YuNet detection row. The
// row starts with the box (x, y, w, h) followed by five landmark pairs.
const yunetScoreColumn = 14

// YuNetDetector finds faces with the YuNet ONNX detector. The detector keeps
// its input size as state, so calls are serialized.
type YuNetDetector struct {
	net      gocv.FaceDetectorYN
	minScore float32
	mutex    sync.Mutex
}

type YuNetConfig struct {
	ModelPath string
	// InputSize is replaced by the frame size on every call
	InputSize      image.Point
	ScoreThreshold float32
	NMSThreshold   float32
	TopK           int
}

func GetDefaultYuNetConfig(modelPath string) YuNetConfig {
	return YuNetConfig{
		ModelPath:      modelPath,
		InputSize:      image.Pt(320, 320),
		ScoreThreshold: 0.6,
		NMSThreshold:   0.3,
		TopK:           5000,
	}
}

func NewYuNetDetector(config YuNetConfig) (*YuNetDetector, error) {
	if _, err := os.Stat(config.ModelPath); err != nil {
		return nil, apperrors.NewConfigError("face detector model not found", err)
	}

	net := gocv.NewFaceDetectorYN(config.ModelPath, "", config.InputSize)
	net.SetScoreThreshold(config.ScoreThreshold)
	net.SetNMSThreshold(config.NMSThreshold)
	net.SetTopK(config.TopK)

	logger.Info("face detector loaded", logger.LoggerOptions{
		Key: "detector",
		Data: map[string]interface{}{
			"score_threshold": config.ScoreThreshold,
			"nms_threshold":   config.NMSThreshold,
		},
	})
	return &YuNetDetector{net: net, minScore: config.ScoreThreshold}, nil
}

// Detect returns the face boxes in frame, clipped to the frame bounds and in
// the order the detector reports them.
func (d *YuNetDetector) Detect(ctx context.Context, frame *entities.Frame) ([]image.Rectangle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()

	img, err := frameToMat(frame)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	detections := gocv.NewMat()
	defer detections.Close()

	d.mutex.Lock()
	d.net.SetInputSize(image.Pt(img.Cols(), img.Rows()))
	d.net.Detect(img, &detections)
	d.mutex.Unlock()

	faces := readBoxes(detections, image.Rect(0, 0, img.Cols(), img.Rows()), d.minScore)
	logger.Info("faces detected", logger.LoggerOptions{
		Key: "detection",
		Data: map[string]interface{}{
			"count":       len(faces),
			"duration_ms": time.Since(started).Milliseconds(),
		},
	})
	return faces, nil
}

func readBoxes(detections gocv.Mat, bounds image.Rectangle, minScore float32) []image.Rectangle {
	boxes := []image.Rectangle{}
	if detections.Empty() {
		return boxes
	}

	for row := 0; row < detections.Rows(); row++ {
		if detections.Cols() > yunetScoreColumn && detections.GetFloatAt(row, yunetScoreColumn) < minScore {
			continue
		}
		left := int(detections.GetFloatAt(row, 0))
		top := int(detections.GetFloatAt(row, 1))
		box := image.Rect(left, top, left+int(detections.GetFloatAt(row, 2)), top+int(detections.GetFloatAt(row, 3)))
		if box = box.Intersect(bounds); !box.Empty() {
			boxes = append(boxes, box)
		}
	}
	return boxes
}

func (d *YuNetDetector) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.net.Close()
	return nil
}
