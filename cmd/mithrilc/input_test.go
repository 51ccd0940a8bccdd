package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStaticInputsEmptyPathReturnsNilWithoutError(t *testing.T) {
	shapes, err := readStaticInputs("")
	require.NoError(t, err)
	assert.Nil(t, shapes)
}

func TestReadStaticInputsParsesJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shapes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"x":[1,2,3]}`), 0o644))

	shapes, err := readStaticInputs(path)
	require.NoError(t, err)
	assert.Equal(t, map[string][]int{"x": {1, 2, 3}}, shapes)
}

func TestReadStaticInputsMissingFileFails(t *testing.T) {
	_, err := readStaticInputs(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReadStaticInputsMalformedJSONFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	_, err := readStaticInputs(path)
	assert.Error(t, err)
}

func TestReadDescriptionReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"M","submodels":{},"connections":{}}`), 0o644))

	data, err := readDescription(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"M"`)
}

func TestReadDescriptionMissingFileFails(t *testing.T) {
	_, err := readDescription(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
