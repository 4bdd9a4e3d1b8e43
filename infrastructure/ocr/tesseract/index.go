package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/akugone/kawayC/application/constants"
	"github.com/akugone/kawayC/entities"
	"github.com/akugone/kawayC/infrastructure/logger"
	"github.com/otiai10/gosseract/v2"
)

// Config holds the engine settings applied to every recognition.
type Config struct {
	Languages string
	Whitelist string
}

func GetDefaultConfig() Config {
	return Config{
		Languages: constants.OCR_LANGUAGES,
		Whitelist: constants.OCR_CHAR_WHITELIST,
	}
}

// Recognizer runs Tesseract through gosseract. A fresh client is created for
// every call since a client is not safe for concurrent use.
type Recognizer struct {
	config Config
	// newClient is swapped in tests
	newClient func() client
}

type client interface {
	SetLanguage(langs ...string) error
	SetWhitelist(whitelist string) error
	SetVariable(key gosseract.SettableVariable, value string) error
	SetPageSegMode(mode gosseract.PageSegMode) error
	SetImageFromBytes(data []byte) error
	Text() (string, error)
	Close() error
}

func NewRecognizer(config Config) *Recognizer {
	return &Recognizer{
		config: config,
		newClient: func() client {
			return gosseract.NewClient()
		},
	}
}

func (r *Recognizer) Recognize(ctx context.Context, img *entities.TextImage) (string, error) {
	if img == nil || len(img.PNG) == 0 {
		return "", fmt.Errorf("empty text image")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tess := r.newClient()
	defer tess.Close()

	if err := r.configure(tess); err != nil {
		return "", err
	}
	if err := tess.SetImageFromBytes(img.PNG); err != nil {
		return "", fmt.Errorf("failed to load image into tesseract: %w", err)
	}

	text, err := tess.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognition failed: %w", err)
	}

	logger.Info("text recognition completed", logger.LoggerOptions{
		Key: "ocr_info",
		Data: map[string]interface{}{
			"characters": len([]rune(text)),
			"width":      img.Width,
			"height":     img.Height,
		},
	})

	return text, nil
}

func (r *Recognizer) configure(tess client) error {
	languages := splitLanguages(r.config.Languages)
	if err := tess.SetLanguage(languages...); err != nil {
		return fmt.Errorf("failed to set languages: %w", err)
	}
	if r.config.Whitelist != "" {
		if err := tess.SetWhitelist(r.config.Whitelist); err != nil {
			return fmt.Errorf("failed to set whitelist: %w", err)
		}
	}
	if err := tess.SetVariable(gosseract.SettableVariable("preserve_interword_spaces"), "1"); err != nil {
		return fmt.Errorf("failed to preserve interword spaces: %w", err)
	}
	return tess.SetPageSegMode(gosseract.PSM_AUTO)
}

func splitLanguages(languages string) []string {
	return strings.FieldsFunc(languages, func(r rune) bool { return r == '+' })
}
