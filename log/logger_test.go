package log

import (
	"bytes"
	"testing"

	"github.com/kataras/golog"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LevelWarn)

	logger.Debug("debug %s", "msg")
	logger.Info("info %s", "msg")
	assert.Empty(t, buf.String())

	logger.Warn("warn %s", "msg")
	logger.Error("error %s", "msg")
	out := buf.String()
	assert.Contains(t, out, "[WARN] warn msg")
	assert.Contains(t, out, "[ERROR] error msg")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "NONE", LevelNone.String())
}

func TestPackageLevelLogger(t *testing.T) {
	orig := GetDefaultLogger()
	defer SetDefaultLogger(orig)

	var buf bytes.Buffer
	SetDefaultLogger(NewCustomLogger(&buf, LevelDebug))

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] d")
	assert.Contains(t, out, "[INFO] i")
	assert.Contains(t, out, "[WARN] w")
	assert.Contains(t, out, "[ERROR] e")
}

func TestGologLogger(t *testing.T) {
	var buf bytes.Buffer
	gl := golog.New()
	gl.SetOutput(&buf)
	gl.SetLevel("debug")

	logger := NewGologLogger(gl)
	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.GetLevel())

	logger.Info("hello %d", 42)
	assert.Contains(t, buf.String(), "hello 42")
}
