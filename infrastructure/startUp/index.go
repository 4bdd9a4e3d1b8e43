package startup

import (
	kyc_usecase "github.com/akugone/kawayC/application/usecases/kyc"
	"github.com/akugone/kawayC/entities"
	"github.com/akugone/kawayC/infrastructure/biometric"
	"github.com/akugone/kawayC/infrastructure/config"
	documentsource "github.com/akugone/kawayC/infrastructure/document_source"
	sourceTypes "github.com/akugone/kawayC/infrastructure/document_source/types"
	"github.com/akugone/kawayC/infrastructure/logger"
	"github.com/akugone/kawayC/infrastructure/metrics"
	"github.com/akugone/kawayC/infrastructure/ocr/tesseract"
	"github.com/akugone/kawayC/infrastructure/output"
	"github.com/akugone/kawayC/infrastructure/preprocessor"
	"github.com/viant/afs"
)

// Services holds everything a verification run needs. The models are loaded
// once and released by CleanUpServices.
type Services struct {
	Dependencies kyc_usecase.Dependencies
	models       *biometric.LoadedModels
}

// Used to start services such as models, the document source and the writer.
func StartServices(cfg *config.Config, fs afs.Service) (*Services, error) {
	models, err := biometric.LoadModels(cfg.Models)
	if err != nil {
		logger.Error("could not load models", logger.LoggerOptions{Key: "error", Data: err.Error()})
		return nil, err
	}
	logger.Info("models loaded", logger.LoggerOptions{Key: "models_dir", Data: cfg.ModelsDir})

	preprocessConfig := preprocessor.GetDefaultConfig()
	preprocessConfig.SharpenKernel = cfg.Preprocessing.SharpenKernel
	preprocessConfig.SharpenAmount = cfg.Preprocessing.SharpenAmount
	preprocessConfig.DenoiseStrength = cfg.Preprocessing.DenoiseStrength

	ocrConfig := tesseract.GetDefaultConfig()
	ocrConfig.Languages = cfg.OCR.Languages

	return &Services{
		Dependencies: kyc_usecase.Dependencies{
			Source:       NewDocumentSource(cfg, fs),
			Preprocessor: preprocessor.NewOpenCVPreprocessor(preprocessConfig),
			Models:       models.Models,
			OCR:          tesseract.NewRecognizer(ocrConfig),
			Writer:       output.NewIExecWriter(fs, cfg.OutputDir),
			Metrics:      metrics.New(),
		},
		models: models,
	}, nil
}

// NewDocumentSource reads the protected dataset archive when one is provided
// and the plain input directory otherwise.
func NewDocumentSource(cfg *config.Config, fs afs.Service) sourceTypes.DocumentSource {
	if archive := cfg.DatasetPath(); archive != "" {
		logger.Info("reading documents from dataset", logger.LoggerOptions{Key: "dataset", Data: cfg.DatasetFilename})
		return documentsource.NewArchiveSource(fs, archive)
	}
	logger.Info("reading documents from input directory", logger.LoggerOptions{Key: "roles", Data: entities.DocumentRoles})
	return documentsource.NewDirSource(fs, cfg.InputDir)
}

// Used to clean up after services that have been shutdown.
func CleanUpServices(services *Services) {
	if services == nil || services.models == nil {
		return
	}
	if err := services.models.Close(); err != nil {
		logger.Warning("could not release models", logger.LoggerOptions{Key: "error", Data: err.Error()})
	}
}
