package ageestimation

import (
	"context"
	"image"
	"math"
	"time"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/application/constants"
	"github.com/akugone/kawayC/entities"
	biometricTypes "github.com/akugone/kawayC/infrastructure/biometric/types"
	"github.com/akugone/kawayC/infrastructure/logger"
)

type Estimator struct {
	Detector biometricTypes.FaceDetector
	Model    biometricTypes.AgeModel
}

func NewEstimator(detector biometricTypes.FaceDetector, model biometricTypes.AgeModel) *Estimator {
	return &Estimator{Detector: detector, Model: model}
}

// EstimateFromSelfie returns the rounded apparent age of the largest face in
// frame.
func (e *Estimator) EstimateFromSelfie(ctx context.Context, frame *entities.Frame) (int, error) {
	if frame == nil || len(frame.BGR) == 0 {
		return 0, apperrors.NewDetectionError("no face detected in selfie", nil)
	}

	faces, err := e.Detector.Detect(ctx, frame)
	if err != nil {
		return 0, apperrors.NewDetectionError("face detection failed", err)
	}
	if len(faces) == 0 {
		return 0, apperrors.NewDetectionError("no face detected in selfie", nil)
	}
	if len(faces) > 1 {
		logger.Warning("multiple faces detected in selfie, using the largest", logger.LoggerOptions{
			Key:  "faces",
			Data: len(faces),
		})
	}

	age, err := e.Model.Predict(ctx, frame, LargestFace(faces))
	if err != nil {
		return 0, apperrors.NewDetectionError("age estimation failed", err)
	}
	if math.IsNaN(age) || age < 0 {
		return 0, apperrors.NewDetectionError("age estimation failed", nil)
	}

	return int(math.Round(age)), nil
}

// LargestFace returns the face with the largest area. Ties keep the earliest
// detection.
func LargestFace(faces []image.Rectangle) image.Rectangle {
	if len(faces) == 0 {
		return image.Rectangle{}
	}

	largest := faces[0]
	maxArea := largest.Dx() * largest.Dy()

	for _, face := range faces[1:] {
		area := face.Dx() * face.Dy()
		if area > maxArea {
			largest = face
			maxArea = area
		}
	}

	return largest
}

// AgeFromDateOfBirth returns the age in whole years at now for a dd/mm/yyyy
// date. Unparseable and future dates yield false.
func AgeFromDateOfBirth(dateOfBirth string, now time.Time) (int, bool) {
	if dateOfBirth == "" {
		return 0, false
	}
	dob, err := time.ParseInLocation(constants.DATE_LAYOUT, dateOfBirth, now.Location())
	if err != nil || dob.After(now) {
		return 0, false
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}
