package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/application/constants"
	"github.com/akugone/kawayC/entities"
	"github.com/akugone/kawayC/infrastructure/logger"
	"github.com/akugone/kawayC/infrastructure/validator"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// statusDescriptor is the computed.json document read by the iExec worker.
type statusDescriptor struct {
	DeterministicOutputPath string `json:"deterministic-output-path"`
	ErrorMessage            string `json:"error-message,omitempty"`
}

// IExecWriter writes the run artifacts into IEXEC_OUT:
//
//	success: result.txt (the verdict) and computed.json pointing at it
//	failure: computed.json alone, pointing at the directory, with error-message
type IExecWriter struct {
	fs        afs.Service
	outputDir string
	outputURL string
}

func NewIExecWriter(fs afs.Service, outputDir string) *IExecWriter {
	return &IExecWriter{
		fs:        fs,
		outputDir: outputDir,
		outputURL: url.Normalize(outputDir, file.Scheme),
	}
}

func (w *IExecWriter) resultURL() string {
	return url.Join(w.outputURL, constants.RESULT_FILE_NAME)
}

func (w *IExecWriter) descriptorURL() string {
	return url.Join(w.outputURL, constants.STATUS_DESCRIPTOR_FILE_NAME)
}

// ResultPath is the path recorded in the success descriptor.
func (w *IExecWriter) ResultPath() string {
	return strings.TrimRight(w.outputDir, "/") + "/" + constants.RESULT_FILE_NAME
}

// EncodeVerdict renders the verdict as 2-space indented JSON. The field order
// is fixed by the struct so identical verdicts encode to identical bytes.
func EncodeVerdict(verdict entities.KYCVerdict) ([]byte, error) {
	return json.MarshalIndent(verdict, "", "  ")
}

func (w *IExecWriter) WriteVerdict(ctx context.Context, verdict entities.KYCVerdict) error {
	if errs := validator.ValidatorInstance.ValidateStruct(verdict); errs != nil {
		return apperrors.NewWriteError("verdict is invalid", validator.JoinErrors(errs))
	}
	body, err := EncodeVerdict(verdict)
	if err != nil {
		return apperrors.NewWriteError("could not encode verdict", err)
	}

	if err := w.fs.Upload(ctx, w.resultURL(), file.DefaultFileOsMode, bytes.NewReader(body)); err != nil {
		return apperrors.NewWriteError("could not write result", err)
	}

	descriptor := statusDescriptor{DeterministicOutputPath: w.ResultPath()}
	if err := w.writeDescriptor(ctx, descriptor); err != nil {
		// result.txt must not outlive a failed descriptor write
		if deleteErr := w.fs.Delete(ctx, w.resultURL()); deleteErr != nil {
			logger.Error("could not remove orphaned result", logger.LoggerOptions{Key: "error", Data: deleteErr.Error()})
		}
		return err
	}

	logger.Info("verdict written", logger.LoggerOptions{Key: "bytes", Data: len(body)})
	return nil
}

func (w *IExecWriter) WriteFailure(ctx context.Context, message string) error {
	if message == "" {
		message = apperrors.DefaultErrorMessage
	}

	if err := w.removeStaleResult(ctx); err != nil {
		return err
	}

	descriptor := statusDescriptor{DeterministicOutputPath: w.outputDir, ErrorMessage: message}
	if err := w.writeDescriptor(ctx, descriptor); err != nil {
		return err
	}

	logger.Info("failure descriptor written")
	return nil
}

// removeStaleResult deletes result.txt so that a failure descriptor never
// sits next to a verdict. When existence cannot be checked the delete is
// attempted anyway.
func (w *IExecWriter) removeStaleResult(ctx context.Context) error {
	exists, err := w.fs.Exists(ctx, w.resultURL())
	if err != nil {
		logger.Warning("could not check for a stale result", logger.LoggerOptions{Key: "error", Data: err.Error()})
	} else if !exists {
		return nil
	}

	if deleteErr := w.fs.Delete(ctx, w.resultURL()); deleteErr != nil {
		if err == nil {
			return apperrors.NewWriteError("could not remove stale result", deleteErr)
		}
		// existence unknown: only a confirmed absence is safe
		if present, checkErr := w.fs.Exists(ctx, w.resultURL()); checkErr != nil || present {
			return apperrors.NewWriteError("could not remove stale result", errors.Join(err, deleteErr))
		}
	}
	return nil
}

func (w *IExecWriter) writeDescriptor(ctx context.Context, descriptor statusDescriptor) error {
	body, err := json.Marshal(descriptor)
	if err != nil {
		return apperrors.NewWriteError("could not encode status descriptor", err)
	}
	if err := w.fs.Upload(ctx, w.descriptorURL(), file.DefaultFileOsMode, bytes.NewReader(body)); err != nil {
		return apperrors.NewWriteError("could not write status descriptor", err)
	}
	return nil
}
