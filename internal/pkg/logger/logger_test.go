package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":  DebugLevel,
		" WARN ": WarnLevel,
		"error":  ErrorLevel,
		"":       InfoLevel,
		"trace":  InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestConfigureJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	lgr := Configure(Config{Level: InfoLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	lgr.Debug().Msg("hidden")
	reports := Component("reports")
	reports.Info().Str("kind", "courses").Msg("cached")

	line := bytes.TrimSpace(buf.Bytes())
	require.NotEmpty(t, line)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(line, &entry))
	assert.Equal(t, "cached", entry["message"])
	assert.Equal(t, "reports", entry["component"])
	assert.Equal(t, "learnhub", entry["service"])
	assert.NotContains(t, buf.String(), "hidden")
}
