package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1broseidon/textviz/common"
)

func TestZapLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(Options{Level: common.WarnLevel, Output: &buf})

	l.Info("hidden info")
	l.Debugf("hidden %s", "debug")
	l.Warnf("visible %s", "warning")
	l.Error("visible error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warning")
	assert.Contains(t, out, "visible error")
}

func TestZapLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(Options{Level: common.DisabledLevel, Output: &buf})

	l.Error("nothing")
	assert.Empty(t, buf.String())

	l.SetLevel(common.DebugLevel)
	l.Debug("now on")
	assert.Contains(t, buf.String(), "now on")
}

func TestZapLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(Options{Level: common.InfoLevel, JSON: true, Output: &buf})

	l.Infof("generated %d visuals", 3)

	assert.Contains(t, buf.String(), `"message":"generated 3 visuals"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}
