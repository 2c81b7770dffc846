package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterLevels(t *testing.T) {
	var dev bytes.Buffer
	NewWithWriter(&dev, "development").Debug("price computed", "service_id", 7)
	require.NotEmpty(t, dev.String())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(dev.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.EqualValues(t, 7, entry["service_id"])

	var prod bytes.Buffer
	NewWithWriter(&prod, "production").Debug("hidden")
	assert.Empty(t, prod.String())
}
