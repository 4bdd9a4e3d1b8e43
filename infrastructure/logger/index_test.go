package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerOptionsBecomeFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	previous := Logger
	Logger = zap.New(core)
	defer func() { Logger = previous }()

	WithRunID("01J0000000000000000000000")
	Info("stage completed", LoggerOptions{Key: "stage", Data: "ocr"}, LoggerOptions{Key: "duration_ms", Data: 42})
	Warning("multiple faces detected", LoggerOptions{Key: "faces", Data: 2})
	Error("write failed")

	entries := logs.All()
	assert.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, "01J0000000000000000000000", first["run_id"])
	assert.Equal(t, "ocr", first["stage"])
	assert.EqualValues(t, 42, first["duration_ms"])

	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}
