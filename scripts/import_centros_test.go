package main

import (
	"context"
	"errors"
	"escolavision_backend/internal/repository/inmem"
	"escolavision_backend/internal/service"
	"escolavision_backend/internal/util"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeListado(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listado.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportFile(t *testing.T) {
	ctx := context.Background()
	storage := &service.StorageService{Provider: &service.LocalStorageProvider{Root: t.TempDir()}}
	valid := writeListado(t, `{"Listado de centros": [{"LOCALIDAD": "Sevilla", "DENOMINACIÓN ESPECÍFICA": "IES Uno"}]}`)
	malformed := writeListado(t, `{"Listado de centros": `)

	for _, archive := range []bool{false, true} {
		db := inmem.Open()
		importer := service.NewCentroImportService(db.Centros, storage, 10)

		result, err := importFile(ctx, importer, valid, archive)
		require.NoError(t, err, "archive %v", archive)
		assert.Equal(t, 1, result.Importados)
		assert.Equal(t, archive, result.Archivo != "")

		result, err = importFile(ctx, importer, malformed, archive)
		assert.True(t, errors.Is(err, util.ErrInvalidInput), "archive %v", archive)
		assert.Nil(t, result)
		assert.Equal(t, 1, db.Centros.Len())

		_, err = importFile(ctx, importer, filepath.Join(t.TempDir(), "no-existe.json"), archive)
		assert.Error(t, err)
	}
}
