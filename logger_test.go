package rediscodec_test

import (
	"bytes"
	"testing"

	"github.com/AndrewDonelson/rediscodec"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestCharmLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	l.SetLevel(log.DebugLevel)
	logger := rediscodec.NewCharmLogger(l)

	logger.Debug("debug-msg")
	logger.Info("info-msg")
	logger.Warn("warn-msg")
	logger.Error("error-msg")

	out := buf.String()
	for _, msg := range []string{"debug-msg", "info-msg", "warn-msg", "error-msg"} {
		assert.Contains(t, out, msg)
	}
}

func TestCharmLogger_NilUsesDefault(t *testing.T) {
	assert.NotNil(t, rediscodec.NewCharmLogger(nil))
}
