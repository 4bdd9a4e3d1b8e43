package infrastructure

import (
	"context"
	"os"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	kyc_usecase "github.com/akugone/kawayC/application/usecases/kyc"
	"github.com/akugone/kawayC/infrastructure/config"
	"github.com/akugone/kawayC/infrastructure/logger"
	"github.com/akugone/kawayC/infrastructure/metrics"
	"github.com/akugone/kawayC/infrastructure/output"
	startup "github.com/akugone/kawayC/infrastructure/startUp"
	"github.com/akugone/kawayC/infrastructure/tracing"
	"github.com/viant/afs"
)

// RunVerification runs one verification end to end. It returns an error only
// when the run could not leave a status descriptor in the output directory.
func RunVerification(ctx context.Context) error {
	fs := afs.New()
	provider := tracing.InitializeTracer()
	defer tracing.Shutdown(context.WithoutCancel(ctx), provider)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", logger.LoggerOptions{Key: "error", Data: err.Error()})
		// IEXEC_OUT may still be usable when only the overlay is broken
		if outputDir := os.Getenv("IEXEC_OUT"); outputDir != "" {
			return reportFailure(ctx, output.NewIExecWriter(fs, outputDir), err)
		}
		return err
	}
	logger.Info("configuration loaded", logger.LoggerOptions{Key: "config", Data: cfg.String()})

	services, err := startup.StartServices(cfg, fs)
	if err != nil {
		return reportFailure(ctx, output.NewIExecWriter(fs, cfg.OutputDir), err)
	}
	defer startup.CleanUpServices(services)
	services.Dependencies.Tracer = provider.Tracer(tracing.TracerName)

	state, err := kyc_usecase.NewVerificationService(services.Dependencies).Run(ctx)
	logStageSummary(services.Dependencies.Metrics)
	logger.Info("run finished", logger.LoggerOptions{Key: "state", Data: string(state)})
	return err
}

func reportFailure(ctx context.Context, writer *output.IExecWriter, cause error) error {
	if err := writer.WriteFailure(ctx, apperrors.PublicMessage(cause)); err != nil {
		logger.Error("could not write failure descriptor", logger.LoggerOptions{Key: "error", Data: err.Error()})
		return err
	}
	return nil
}

func logStageSummary(m *metrics.Metrics) {
	summary, err := m.StageSummary()
	if err != nil {
		logger.Warning("could not gather stage timings", logger.LoggerOptions{Key: "error", Data: err.Error()})
		return
	}
	logger.Info("stage timings", logger.LoggerOptions{Key: "seconds", Data: summary})
}
