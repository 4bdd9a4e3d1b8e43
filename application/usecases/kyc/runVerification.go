package kyc_usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/application/services/ageestimation"
	"github.com/akugone/kawayC/application/services/crossvalidation"
	"github.com/akugone/kawayC/application/services/facematch"
	"github.com/akugone/kawayC/application/services/fieldparser"
	"github.com/akugone/kawayC/application/utils"
	"github.com/akugone/kawayC/entities"
	biometricTypes "github.com/akugone/kawayC/infrastructure/biometric/types"
	documentsource "github.com/akugone/kawayC/infrastructure/document_source"
	sourceTypes "github.com/akugone/kawayC/infrastructure/document_source/types"
	"github.com/akugone/kawayC/infrastructure/logger"
	"github.com/akugone/kawayC/infrastructure/metrics"
	ocrTypes "github.com/akugone/kawayC/infrastructure/ocr/types"
	outputTypes "github.com/akugone/kawayC/infrastructure/output/types"
	preprocessorTypes "github.com/akugone/kawayC/infrastructure/preprocessor/types"
	"github.com/akugone/kawayC/infrastructure/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	stageLoad          = "load"
	stageSelfieFace    = "selfie_embedding"
	stageIDFace        = "id_embedding"
	stageAge           = "age_estimation"
	stageIDText        = "id_ocr"
	stageAddressText   = "address_proof_ocr"
	stageFaceMatch     = "face_match"
	stageCrossValidate = "cross_validation"
	stageWrite         = "write"
)

// Dependencies are built once per process and shared by every stage.
type Dependencies struct {
	Source       sourceTypes.DocumentSource
	Preprocessor preprocessorTypes.Preprocessor
	Models       biometricTypes.Models
	OCR          ocrTypes.TextRecognizer
	Parsers      *fieldparser.Registry
	Writer       outputTypes.ArtifactWriter
	Metrics      *metrics.Metrics
	// Clock dates the age computed from the id; defaults to time.Now.
	Clock func() time.Time
	// Tracer defaults to the globally registered provider.
	Tracer trace.Tracer
}

type VerificationService struct {
	deps      Dependencies
	matcher   *facematch.Matcher
	estimator *ageestimation.Estimator
	tracer    trace.Tracer
	state     entities.RunState
}

func NewVerificationService(deps Dependencies) *VerificationService {
	if deps.Parsers == nil {
		deps.Parsers = fieldparser.DefaultRegistry()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer(tracing.TracerName)
	}
	return &VerificationService{
		deps:      deps,
		matcher:   facematch.NewMatcher(deps.Models.Embedder),
		estimator: ageestimation.NewEstimator(deps.Models.Detector, deps.Models.Age),
		tracer:    deps.Tracer,
		state:     entities.RunInit,
	}
}

func (s *VerificationService) State() entities.RunState {
	return s.state
}

func (s *VerificationService) transition(next entities.RunState) {
	state, err := s.state.Transition(next)
	if err != nil {
		logger.Error("invalid run state transition", logger.LoggerOptions{Key: "error", Data: err.Error()})
		return
	}
	s.state = state
}

// Run performs one verification and writes exactly one artifact set: the
// verdict with its descriptor on success, the failure descriptor otherwise.
// The returned error is non-nil only when nothing could be written.
func (s *VerificationService) Run(ctx context.Context) (entities.RunState, error) {
	if s.state != entities.RunInit {
		return s.state, fmt.Errorf("verification already ran")
	}
	s.transition(entities.RunRunning)

	ctx, span := s.tracer.Start(ctx, "kyc.run")
	defer span.End()

	verdict, err := s.verify(ctx)
	if err == nil {
		err = s.timed(ctx, stageWrite, func(ctx context.Context) error {
			return s.deps.Writer.WriteVerdict(ctx, *verdict)
		})
		if err == nil {
			s.transition(entities.RunSuccess)
			span.SetAttributes(attribute.Bool("kyc.overall", verdict.Overall))
			s.deps.Metrics.IncrementOutcome(string(entities.RunSuccess))
			logger.Info("verification completed", logger.LoggerOptions{
				Key: "verdict",
				Data: map[string]interface{}{
					"face_match_score": verdict.FaceMatchScore,
					"face_valid":       verdict.FaceValid,
					"age_match":        verdict.AgeMatch,
					"overall":          verdict.Overall,
				},
			})
			return s.state, nil
		}
	}

	s.transition(entities.RunFailure)
	s.deps.Metrics.IncrementOutcome(string(entities.RunFailure))
	kind, _ := apperrors.KindOf(err)
	span.SetAttributes(attribute.String("kyc.error_kind", string(kind)))
	span.SetStatus(codes.Error, string(kind))
	logger.Error("verification failed", logger.LoggerOptions{Key: "kind", Data: string(kind)})

	if writeErr := s.deps.Writer.WriteFailure(ctx, apperrors.PublicMessage(err)); writeErr != nil {
		logger.Error("could not write failure descriptor", logger.LoggerOptions{Key: "error", Data: writeErr.Error()})
		return s.state, writeErr
	}
	return s.state, nil
}

// verify runs every stage up to the verdict. A panic in any stage becomes an
// error so that the run still ends with a descriptor.
func (s *VerificationService) verify(ctx context.Context) (verdict *entities.KYCVerdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("verification crashed with panic", logger.LoggerOptions{Key: "panic", Data: fmt.Sprintf("%v", r)})
			verdict = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	var docs *entities.DocumentSet
	err = s.timed(ctx, stageLoad, func(ctx context.Context) error {
		var loadErr error
		docs, loadErr = documentsource.LoadAll(ctx, s.deps.Source)
		return loadErr
	})
	if err != nil {
		return nil, err
	}
	defer docs.Wipe()

	var faces faceOutcome
	var texts textOutcome
	var faceErr, textErr error

	// the two groups run side by side and are joined before validation
	outer := new(errgroup.Group)
	outer.Go(func() error {
		faces, faceErr = s.faceGroup(ctx, docs)
		return faceErr
	})
	outer.Go(func() error {
		texts, textErr = s.textGroup(ctx, docs)
		return textErr
	})
	_ = outer.Wait()
	if err := firstError(faceErr, textErr); err != nil {
		return nil, err
	}

	var faceResult entities.FaceMatchResult
	err = s.timed(ctx, stageFaceMatch, func(context.Context) error {
		var compareErr error
		faceResult, compareErr = s.matcher.Compare(faces.selfieEmbedding, faces.idEmbedding)
		return compareErr
	})
	if err != nil {
		return nil, err
	}

	var validation entities.ValidationResult
	err = s.timed(ctx, stageCrossValidate, func(context.Context) error {
		var validateErr error
		validation, validateErr = s.crossValidate(texts, faces.estimatedAge)
		return validateErr
	})
	if err != nil {
		return nil, err
	}

	result := AssembleVerdict(faceResult, validation)
	return &result, nil
}

type faceOutcome struct {
	selfieEmbedding []float32
	idEmbedding     []float32
	estimatedAge    int
}

// faceGroup embeds both faces and estimates the selfie age concurrently.
func (s *VerificationService) faceGroup(ctx context.Context, docs *entities.DocumentSet) (faceOutcome, error) {
	var outcome faceOutcome
	errs := make([]error, 3)
	group := new(errgroup.Group)

	group.Go(func() error {
		errs[0] = s.timed(ctx, stageSelfieFace, func(ctx context.Context) error {
			embedding, err := s.embed(ctx, docs.Selfie)
			outcome.selfieEmbedding = embedding
			return err
		})
		return errs[0]
	})
	group.Go(func() error {
		errs[1] = s.timed(ctx, stageIDFace, func(ctx context.Context) error {
			embedding, err := s.embed(ctx, docs.ID)
			outcome.idEmbedding = embedding
			return err
		})
		return errs[1]
	})
	group.Go(func() error {
		errs[2] = s.timed(ctx, stageAge, func(ctx context.Context) error {
			frame, err := s.deps.Preprocessor.Frame(ctx, docs.Selfie.Data)
			if err != nil {
				return asInputError(err)
			}
			defer frame.Wipe()
			age, err := s.estimator.EstimateFromSelfie(ctx, frame)
			outcome.estimatedAge = age
			return err
		})
		return errs[2]
	})

	_ = group.Wait()
	return outcome, firstError(errs...)
}

func (s *VerificationService) embed(ctx context.Context, doc *entities.DocumentBuffer) ([]float32, error) {
	tensor, err := s.deps.Preprocessor.FaceTensor(ctx, doc.Data)
	if err != nil {
		return nil, asInputError(err)
	}
	defer tensor.Wipe()
	return s.matcher.Embed(ctx, tensor)
}

type textOutcome struct {
	idText    string
	proofText string
}

// textGroup runs OCR on the id and the address proof concurrently.
func (s *VerificationService) textGroup(ctx context.Context, docs *entities.DocumentSet) (textOutcome, error) {
	var outcome textOutcome
	errs := make([]error, 2)
	group := new(errgroup.Group)

	group.Go(func() error {
		errs[0] = s.timed(ctx, stageIDText, func(ctx context.Context) error {
			text, err := s.recognize(ctx, docs.ID)
			outcome.idText = text
			return err
		})
		return errs[0]
	})
	group.Go(func() error {
		errs[1] = s.timed(ctx, stageAddressText, func(ctx context.Context) error {
			text, err := s.recognize(ctx, docs.AddressProof)
			outcome.proofText = text
			return err
		})
		return errs[1]
	})

	_ = group.Wait()
	return outcome, firstError(errs...)
}

func (s *VerificationService) recognize(ctx context.Context, doc *entities.DocumentBuffer) (string, error) {
	img, err := s.deps.Preprocessor.TextImage(ctx, doc.Data)
	if err != nil {
		return "", asInputError(err)
	}
	defer img.Wipe()

	text, err := s.deps.OCR.Recognize(ctx, img)
	if err != nil {
		return "", apperrors.NewOCRError(fmt.Sprintf("text recognition failed on %s", doc.Role), err)
	}
	return text, nil
}

func (s *VerificationService) crossValidate(texts textOutcome, estimatedAge int) (entities.ValidationResult, error) {
	idFields, err := s.deps.Parsers.Parse(entities.IDDocument, texts.idText)
	if err != nil {
		return entities.ValidationResult{}, err
	}
	proofFields, err := s.deps.Parsers.Parse(entities.AddressProofDocument, texts.proofText)
	if err != nil {
		return entities.ValidationResult{}, err
	}

	var ageFromID *int
	if age, ok := ageestimation.AgeFromDateOfBirth(idFields.DateOfBirth, s.deps.Clock()); ok {
		ageFromID = utils.GetIntPointer(age)
	}

	logger.Info("fields extracted", logger.LoggerOptions{
		Key: "fields",
		Data: map[string]interface{}{
			"id_name_found":       idFields.HasName(),
			"id_dob_found":        idFields.HasDateOfBirth(),
			"id_age_usable":       ageFromID != nil,
			"proof_name_found":    proofFields.HasName(),
			"proof_address_found": proofFields.Address != "",
		},
	})

	return crossvalidation.Validate(crossvalidation.Input{
		IDName:           idFields.Name,
		AddressProofName: proofFields.Name,
		EstimatedAge:     utils.GetIntPointer(estimatedAge),
		AgeFromID:        ageFromID,
	}), nil
}

// timed wraps a stage in a span and records its latency and failure kind.
// Stages run on their own goroutines, so a panic is turned into an error here.
func (s *VerificationService) timed(ctx context.Context, stage string, fn func(context.Context) error) (err error) {
	ctx, span := s.tracer.Start(ctx, "kyc."+stage)
	defer span.End()

	start := time.Now()
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("stage crashed with panic", logger.LoggerOptions{Key: "stage", Data: stage})
				err = fmt.Errorf("panic in %s: %v", stage, r)
			}
		}()
		err = fn(ctx)
	}()
	s.deps.Metrics.ObserveStage(stage, time.Since(start))

	if err != nil {
		kind, _ := apperrors.KindOf(err)
		span.SetAttributes(attribute.String("kyc.error_kind", string(kind)))
		span.SetStatus(codes.Error, string(kind))
		s.deps.Metrics.IncrementStageFailure(stage, string(kind))
	}
	return err
}

// firstError returns the first error in stage order so that the reported
// failure does not depend on goroutine scheduling.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func asInputError(err error) error {
	var kycErr *apperrors.KYCError
	if errors.As(err, &kycErr) {
		return err
	}
	return apperrors.NewInputError("document could not be processed", err)
}
