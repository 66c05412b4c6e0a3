package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUpdates(t *testing.T) {
	updates, err := ParseUpdates([]string{"value", "42", "name", "paginas", "flags", `["a","b"]`})
	require.NoError(t, err)

	assert.Equal(t, float64(42), updates["value"])
	assert.Equal(t, "paginas", updates["name"])
	assert.Equal(t, []interface{}{"a", "b"}, updates["flags"])

	_, err = ParseUpdates([]string{"value"})
	assert.Error(t, err)
	_, err = ParseUpdates(nil)
	assert.Error(t, err)
}

func TestUpdateFile(t *testing.T) {
	path := writeTempConfig(t, TestConfig{Name: "test", Value: 1})

	modified, err := UpdateFile(path, map[string]interface{}{"value": float64(9), "port": float64(80)})
	require.NoError(t, err)
	assert.Equal(t, 1, modified)

	var config TestConfig
	require.NoError(t, LoadConfig(path, &config))
	assert.Equal(t, TestConfig{Name: "test", Value: 9}, config)
}

func TestUpdateFile_NoKnownKeys(t *testing.T) {
	path := writeTempConfig(t, TestConfig{Name: "test", Value: 1})

	modified, err := UpdateFile(path, map[string]interface{}{"port": float64(80)})
	require.NoError(t, err)
	assert.Zero(t, modified)
}
