package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	InputError     Kind = "InputError"
	DetectionError Kind = "DetectionError"
	OCRError       Kind = "OCRError"
	WriteError     Kind = "WriteError"
	ConfigError    Kind = "ConfigError"
)

// DefaultErrorMessage is reported when a failure carries no usable message.
const DefaultErrorMessage = "Oops something went wrong"

// KYCError is the error returned by every stage of a verification run.
// Message is safe to publish in the status descriptor; Cause never is.
type KYCError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *KYCError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
}

func (e *KYCError) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, message string, cause error) *KYCError {
	return &KYCError{Kind: kind, Message: message, Cause: cause}
}

func NewInputError(message string, cause error) *KYCError {
	return newError(InputError, message, cause)
}

func NewDetectionError(message string, cause error) *KYCError {
	return newError(DetectionError, message, cause)
}

func NewOCRError(message string, cause error) *KYCError {
	return newError(OCRError, message, cause)
}

func NewWriteError(message string, cause error) *KYCError {
	return newError(WriteError, message, cause)
}

func NewConfigError(message string, cause error) *KYCError {
	return newError(ConfigError, message, cause)
}

// KindOf returns the kind of the first KYCError in the chain.
func KindOf(err error) (Kind, bool) {
	var kycErr *KYCError
	if errors.As(err, &kycErr) {
		return kycErr.Kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	found, ok := KindOf(err)
	return ok && found == kind
}

// PublicMessage returns the message that may leave the enclave for err.
func PublicMessage(err error) string {
	var kycErr *KYCError
	if errors.As(err, &kycErr) && kycErr.Message != "" {
		return kycErr.Message
	}
	return DefaultErrorMessage
}
