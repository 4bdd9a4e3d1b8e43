package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKYCErrorKinds(t *testing.T) {
	cause := errors.New("tesseract exited")
	tests := []struct {
		name string
		err  *KYCError
		kind Kind
	}{
		{name: "input", err: NewInputError("missing selfie", nil), kind: InputError},
		{name: "detection", err: NewDetectionError("no face detected in selfie", nil), kind: DetectionError},
		{name: "ocr", err: NewOCRError("text recognition failed", cause), kind: OCRError},
		{name: "write", err: NewWriteError("could not write result", cause), kind: WriteError},
		{name: "config", err: NewConfigError("IEXEC_OUT is required", nil), kind: ConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("stage failed: %w", tt.err)
			assert.True(t, IsKind(wrapped, tt.kind))
			kind, ok := KindOf(wrapped)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestPublicMessageHidesCause(t *testing.T) {
	err := NewOCRError("text recognition failed", errors.New("page text: JEAN DUPONT"))

	assert.Equal(t, "text recognition failed", PublicMessage(err))
	assert.ErrorContains(t, err, "JEAN DUPONT")
	assert.ErrorIs(t, err, err.Cause)
}

func TestPublicMessageDefaults(t *testing.T) {
	assert.Equal(t, DefaultErrorMessage, PublicMessage(errors.New("boom")))
	assert.Equal(t, DefaultErrorMessage, PublicMessage(NewInputError("", nil)))
	assert.False(t, IsKind(errors.New("boom"), InputError))
}
