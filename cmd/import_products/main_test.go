package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestLogImportError_FalloAMitadDeLote(t *testing.T) {
	var buf bytes.Buffer
	logImportError(zerolog.New(&buf), &inventory.BulkResult{Added: 2}, errors.New("conexión perdida"))

	line := decodeLine(t, &buf)
	assert.Equal(t, "error", line["level"])
	assert.EqualValues(t, 2, line["added"])
	assert.Equal(t, "conexión perdida", line["error"])
	assert.Contains(t, line["message"], "ya quedaron registradas")
	assert.NotContains(t, line["message"], "no se escribió nada")
}

func TestLogImportError_ValidacionPrevia(t *testing.T) {
	var buf bytes.Buffer
	logImportError(zerolog.New(&buf), nil, errors.New("fila 3: precio negativo"))

	line := decodeLine(t, &buf)
	assert.NotContains(t, line, "added")
	assert.Contains(t, line["message"], "no se escribió nada")
}
