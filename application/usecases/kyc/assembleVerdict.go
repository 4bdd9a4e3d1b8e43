package kyc_usecase

import "github.com/akugone/kawayC/entities"

// AssembleVerdict builds the only artifact that leaves the run. Names,
// addresses and dates of birth are not carried over.
//
// overall = faceValid && nameMatch && ageMatch. The cross-validator's own
// Overall covers only the document checks; the verdict also requires the
// selfie to match the id photo.
func AssembleVerdict(face entities.FaceMatchResult, validation entities.ValidationResult) entities.KYCVerdict {
	return entities.KYCVerdict{
		FaceMatchScore: face.Score,
		FaceValid:      face.Valid,
		AgeMatch:       validation.AgeMatch,
		Overall:        face.Valid && validation.NameMatch && validation.AgeMatch,
	}
}
