package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var ocrLanguagesRegex = regexp.MustCompile(`^[a-z_]{3,}(\+[a-z_]{3,})*$`)

// tesseract language lists look like "fra+eng"
func validateOCRLanguages(fl validator.FieldLevel) bool {
	return ocrLanguagesRegex.MatchString(fl.Field().String())
}

func validateOddKernel(fl validator.FieldLevel) bool {
	size := fl.Field().Int()
	return size > 0 && size%2 == 1
}
