package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, New(false, nil).GetLevel())
	assert.Equal(t, logrus.DebugLevel, New(true, nil).GetLevel())
}

func TestRedactsSecrets(t *testing.T) {
	const token = "123456:ABC-SECRET"

	log := New(false, []string{token})
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.Infof("Calling API with token %s", token)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.NotContains(t, out, token)
	assert.Contains(t, out, "<REDACTED>")
}

func TestRedactsInFields(t *testing.T) {
	const token = "f1eld-s3cret"

	log := New(false, []string{token})
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.WithField("token", token).Warn("field values are redacted too")

	out := buf.String()
	assert.NotContains(t, out, token)
	assert.Contains(t, out, "<REDACTED>")
}

func TestEmptyPatternsIgnored(t *testing.T) {
	f := NewRedactingFormatter(&logrus.TextFormatter{DisableTimestamp: true}, []string{"", "real"})

	log := logrus.New()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFormatter(f)

	log.Info("a real message")
	assert.Contains(t, buf.String(), "a <REDACTED> message")
}
