package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pomodoro/pkg/settings"
)

func TestWriteSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.schema.json")
	require.NoError(t, writeSchema(path, settings.Schema()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	props, ok := parsed["properties"].(map[string]any)
	require.True(t, ok, "schema has properties")
	assert.Contains(t, props, "work_minutes")
	assert.Contains(t, props, "break_minutes")
	assert.Contains(t, props, "ratings")
}

func TestWriteSchema_BadPath(t *testing.T) {
	err := writeSchema(filepath.Join(t.TempDir(), "missing", "x.json"), settings.Schema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write schema")
}
