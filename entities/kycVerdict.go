package entities

// ExtractedFields are the fields recovered from OCR text. Empty strings mean
// the field could not be located.
type ExtractedFields struct {
	Name        string
	Address     string
	DateOfBirth string // dd/mm/yyyy
}

func (fields ExtractedFields) HasName() bool {
	return fields.Name != ""
}

func (fields ExtractedFields) HasDateOfBirth() bool {
	return fields.DateOfBirth != ""
}

type FaceMatchResult struct {
	Score float64
	Valid bool
}

type ValidationResult struct {
	NameMatch bool
	AgeMatch  bool
	Overall   bool
}

// KYCVerdict is the only artifact that leaves the enclave on success.
type KYCVerdict struct {
	FaceMatchScore float64 `json:"faceMatchScore" validate:"gte=0,lte=1"`
	FaceValid      bool    `json:"faceValid"`
	AgeMatch       bool    `json:"ageMatch"`
	Overall        bool    `json:"overall"`
}
