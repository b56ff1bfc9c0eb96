package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriterLevelAndService(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.WarnLevel)

	log.Info().Msg("hidden")
	log.Warn().Str("ticker", "SPY").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line leaked through warn level: %s", out)
	}
	if !strings.Contains(out, `"service":"takeprofit"`) || !strings.Contains(out, `"ticker":"SPY"`) {
		t.Errorf("unexpected output: %s", out)
	}
}
