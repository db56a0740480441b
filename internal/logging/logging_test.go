package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{Level: "loud", Format: LogFormatText}.Validate())
	assert.Error(t, Config{Level: LogLevelInfo, Format: "xml"}.Validate())
}

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: LogLevelDebug, Format: LogFormatJSON}, &buf)
		require.NoError(t, err)

		logger.WithField("states", 3).Debug("hypothesis built")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hypothesis built", entry["msg"])
		assert.Equal(t, float64(3), entry["states"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: LogLevelWarning, Format: LogFormatText}, &buf)
		require.NoError(t, err)
		logger.Info("quiet")
		assert.Empty(t, buf.String())
		logger.Warn("loud")
		assert.Contains(t, buf.String(), "loud")
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := New(Config{}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	assert.False(t, logger.IsLevelEnabled(logrus.ErrorLevel))
}
