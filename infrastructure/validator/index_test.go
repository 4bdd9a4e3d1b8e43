package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ocrSettings struct {
	Languages string  `validate:"required,ocr_languages"`
	Kernel    int     `validate:"odd_kernel"`
	Score     float64 `validate:"gte=0,lte=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		payload ocrSettings
		wantErr int
	}{
		{name: "valid", payload: ocrSettings{Languages: "fra+eng", Kernel: 3, Score: 0.72}},
		{name: "single language", payload: ocrSettings{Languages: "fra", Kernel: 5, Score: 0}},
		{name: "bad language list", payload: ocrSettings{Languages: "fra eng", Kernel: 3, Score: 1}, wantErr: 1},
		{name: "even kernel and score out of range", payload: ocrSettings{Languages: "eng", Kernel: 4, Score: 1.2}, wantErr: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatorInstance.ValidateStruct(tt.payload)
			if tt.wantErr == 0 {
				assert.Nil(t, errs)
				assert.NoError(t, JoinErrors(errs))
				return
			}
			require.NotNil(t, errs)
			assert.Len(t, *errs, tt.wantErr)
			assert.Error(t, JoinErrors(errs))
		})
	}
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidatorInstance.ValidateValue("fra+eng", "ocr_languages"))
	assert.Error(t, ValidatorInstance.ValidateValue("", "required"))
}
