package config

import (
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/application/constants"
	"github.com/akugone/kawayC/infrastructure/validator"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// OutputDir is IEXEC_OUT, the only location the run writes to.
	OutputDir       string `yaml:"-" validate:"required"`
	InputDir        string `yaml:"-" validate:"required"`
	DatasetFilename string `yaml:"-"`
	ModelsDir       string `yaml:"-" validate:"required"`

	Models        ModelConfig      `yaml:"models"`
	Preprocessing PreprocessConfig `yaml:"preprocessing"`
	OCR           OCRConfig        `yaml:"ocr"`
}

type ModelConfig struct {
	FaceNet                string    `yaml:"facenet" validate:"required"`
	FaceDetector           string    `yaml:"faceDetector" validate:"required"`
	AgeNet                 string    `yaml:"ageNet" validate:"required"`
	AgeNetConfig           string    `yaml:"ageNetConfig"`
	AgeInputSize           int       `yaml:"ageInputSize" validate:"gt=0"`
	AgeMean                []float64 `yaml:"ageMean" validate:"len=3"`
	AgeBuckets             []float64 `yaml:"ageBuckets"`
	DetectorScoreThreshold float32   `yaml:"detectorScoreThreshold" validate:"gt=0,lt=1"`
	DetectorNMSThreshold   float32   `yaml:"detectorNMSThreshold" validate:"gt=0,lt=1"`
	DetectorTopK           int       `yaml:"detectorTopK" validate:"gt=0"`
}

type PreprocessConfig struct {
	SharpenKernel   int     `yaml:"sharpenKernel" validate:"odd_kernel"`
	SharpenAmount   float64 `yaml:"sharpenAmount" validate:"gte=0,lte=5"`
	DenoiseStrength float32 `yaml:"denoiseStrength" validate:"gte=0,lte=30"`
}

type OCRConfig struct {
	Languages string `yaml:"languages" validate:"required,ocr_languages"`
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Default returns the configuration used when nothing is overridden. The age
// model defaults to the Levi-Hassner age net and its eight age buckets.
func Default() Config {
	return Config{
		InputDir:  "./input",
		ModelsDir: "./models",
		Models: ModelConfig{
			FaceNet:                "facenet/facenet.onnx",
			FaceDetector:           "yunet/face_detection_yunet_2023mar.onnx",
			AgeNet:                 "age/age_net.caffemodel",
			AgeNetConfig:           "age/age_deploy.prototxt",
			AgeInputSize:           227,
			AgeMean:                []float64{78.4263377603, 87.7689143744, 114.895847746},
			AgeBuckets:             []float64{1, 5, 10, 17.5, 28.5, 40.5, 50.5, 80},
			DetectorScoreThreshold: 0.6,
			DetectorNMSThreshold:   0.3,
			DetectorTopK:           5000,
		},
		Preprocessing: PreprocessConfig{
			SharpenKernel:   5,
			SharpenAmount:   1.0,
			DenoiseStrength: 7,
		},
		OCR: OCRConfig{
			Languages: constants.OCR_LANGUAGES,
		},
	}
}

// Load reads the process environment.
func Load() (*Config, error) {
	return LoadFromEnv(os.LookupEnv)
}

// LoadFromEnv builds the configuration from lookup, applies the optional
// KYC_CONFIG_FILE overlay and validates the result.
func LoadFromEnv(lookup LookupFunc) (*Config, error) {
	cfg := Default()

	cfg.OutputDir = valueOr(lookup, "IEXEC_OUT", "")
	if cfg.OutputDir == "" {
		return nil, apperrors.NewConfigError("IEXEC_OUT is not set", nil)
	}
	cfg.InputDir = valueOr(lookup, "IEXEC_IN", cfg.InputDir)
	cfg.DatasetFilename = valueOr(lookup, "IEXEC_DATASET_FILENAME", "")
	cfg.ModelsDir = valueOr(lookup, "KYC_MODELS_DIR", cfg.ModelsDir)

	if path := valueOr(lookup, "KYC_CONFIG_FILE", ""); path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}

	if errs := validator.ValidatorInstance.ValidateStruct(cfg); errs != nil {
		return nil, apperrors.NewConfigError("invalid configuration", validator.JoinErrors(errs))
	}

	cfg.Models.resolve(cfg.ModelsDir)
	return &cfg, nil
}

func (cfg *Config) overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError("could not read config file", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return apperrors.NewConfigError("could not parse config file", err)
	}
	return nil
}

func (models *ModelConfig) resolve(root string) {
	models.FaceNet = resolvePath(root, models.FaceNet)
	models.FaceDetector = resolvePath(root, models.FaceDetector)
	models.AgeNet = resolvePath(root, models.AgeNet)
	models.AgeNetConfig = resolvePath(root, models.AgeNetConfig)
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func valueOr(lookup LookupFunc, key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

// DatasetPath returns the dataset archive path or an empty string when the
// documents are plain files in InputDir.
func (cfg *Config) DatasetPath() string {
	if cfg.DatasetFilename == "" {
		return ""
	}
	return filepath.Join(cfg.InputDir, cfg.DatasetFilename)
}

func (cfg *Config) String() string {
	return fmt.Sprintf("input=%s dataset=%t output=%s models=%s", cfg.InputDir, cfg.DatasetFilename != "", cfg.OutputDir, cfg.ModelsDir)
}
