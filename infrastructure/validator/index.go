package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterValidation("ocr_languages", validateOCRLanguages)
	validate.RegisterValidation("odd_kernel", validateOddKernel)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

func (v *Validator) ValidateValue(value any, rules string) error {
	return validateField(value, rules)
}

var ValidatorInstance = Validator{}

func validateStruct(payload interface{}) *[]error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &[]error{err}
	}
	errs := []error{}
	for _, fieldErr := range fieldErrors {
		errs = append(errs, fmt.Errorf("%s failed on the %s rule", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return &errs
}

func validateField(value any, rules string) error {
	return validate.Var(value, rules)
}

// JoinErrors flattens the result of ValidateStruct into a single error.
func JoinErrors(errs *[]error) error {
	if errs == nil {
		return nil
	}
	return errors.Join(*errs...)
}
