package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndFormat(t *testing.T) {
	log := New("debug", "json")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = New("warn", "text")
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	log := New("loud", "text")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewWithService_TagsEntries(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithService("info", "json", "xelite")
	log.SetOutput(&buf)

	log.WithField("op", "analyze").Info("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "xelite", entry["service"])
	assert.Equal(t, "analyze", entry["op"])
}
