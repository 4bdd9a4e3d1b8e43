package biometric

import (
	"errors"

	"github.com/akugone/kawayC/infrastructure/biometric/types"
	"github.com/akugone/kawayC/infrastructure/config"
	"gocv.io/x/gocv"
)

// LoadedModels owns the networks behind a types.Models bundle.
type LoadedModels struct {
	types.Models
	faceNet  *FaceNetRecognizer
	detector *YuNetDetector
	ageNet   *AgeNetEstimator
}

// LoadModels loads every network once. The bundle is shared by all stages of
// the run and released with Close.
func LoadModels(cfg config.ModelConfig) (*LoadedModels, error) {
	loaded := &LoadedModels{}

	faceNet, err := NewFaceNetRecognizer(GetDefaultFaceNetConfig(cfg.FaceNet))
	if err != nil {
		return nil, err
	}
	loaded.faceNet = faceNet

	yunetConfig := GetDefaultYuNetConfig(cfg.FaceDetector)
	yunetConfig.ScoreThreshold = cfg.DetectorScoreThreshold
	yunetConfig.NMSThreshold = cfg.DetectorNMSThreshold
	yunetConfig.TopK = cfg.DetectorTopK
	detector, err := NewYuNetDetector(yunetConfig)
	if err != nil {
		loaded.Close()
		return nil, err
	}
	loaded.detector = detector

	ageConfig := AgeNetConfig{
		ModelPath:  cfg.AgeNet,
		ConfigPath: cfg.AgeNetConfig,
		InputSize:  cfg.AgeInputSize,
		Buckets:    cfg.AgeBuckets,
		Backend:    gocv.NetBackendDefault,
		Target:     gocv.NetTargetCPU,
	}
	copy(ageConfig.Mean[:], cfg.AgeMean)
	ageNet, err := NewAgeNetEstimator(ageConfig)
	if err != nil {
		loaded.Close()
		return nil, err
	}
	loaded.ageNet = ageNet

	loaded.Models = types.Models{
		Embedder: faceNet,
		Detector: detector,
		Age:      ageNet,
	}
	return loaded, nil
}

func (m *LoadedModels) Close() error {
	var errs []error
	if m.faceNet != nil {
		errs = append(errs, m.faceNet.Close())
	}
	if m.detector != nil {
		errs = append(errs, m.detector.Close())
	}
	if m.ageNet != nil {
		errs = append(errs, m.ageNet.Close())
	}
	return errors.Join(errs...)
}

