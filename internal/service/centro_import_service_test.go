package service_test

import (
	"context"
	"errors"
	"escolavision_backend/internal/service"
	"escolavision_backend/internal/util"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listado = `{
  "Listado de centros": [
    {
      "COMUNIDAD AUTÓNOMA": "Andalucía",
      "PROVINCIA": "Sevilla",
      "LOCALIDAD": "Sevilla",
      "DENOMINACIÓN GENÉRICA": "Instituto de Educación Secundaria",
      "DENOMINACIÓN ESPECÍFICA": " IES Uno ",
      "CÓDIGO": 41000001,
      "NATURALEZA": "Público",
      "DOMICILIO": "Calle Mayor 1",
      "CÓD POSTAL": "41001",
      "TELÉFONO": "954000001/954000002"
    },
    {
      "LOCALIDAD": "Cádiz",
      "DENOMINACIÓN ESPECÍFICA": "IES Dos",
      "TELÉFONO": 956000001
    }
  ]
}`

func TestParseListado(t *testing.T) {
	centros, err := service.ParseListado(strings.NewReader(listado))
	require.NoError(t, err)
	require.Len(t, centros, 2)

	assert.Equal(t, "IES Uno", centros[0].DenominacionEspecifica)
	assert.Equal(t, "41000001", centros[0].Codigo)
	assert.Equal(t, "954000001", centros[0].Telefono)
	assert.Equal(t, "954000002", centros[0].TelefonoSecundario)
	assert.Equal(t, "956000001", centros[1].Telefono)
	assert.Empty(t, centros[1].TelefonoSecundario)
}

func TestParseListadoInvalid(t *testing.T) {
	for _, body := range []string{`{`, `{"centros": []}`, `{"Listado de centros": {}}`} {
		_, err := service.ParseListado(strings.NewReader(body))
		assert.True(t, errors.Is(err, util.ErrInvalidInput), "body %s", body)
	}
}

func TestSplitTelefono(t *testing.T) {
	p, s := service.SplitTelefono(" 954 123 456 / 954 654 321 ")
	assert.Equal(t, "954 123 456", p)
	assert.Equal(t, "954 654 321", s)

	p, s = service.SplitTelefono(strings.Repeat("9", 25))
	assert.Equal(t, strings.Repeat("9", 20), p)
	assert.Empty(t, s)
}

func listadoDe(n int) string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf(`{"LOCALIDAD": "L%d", "DENOMINACIÓN ESPECÍFICA": "Centro %d"}`, i, i)
	}
	return `{"Listado de centros": [` + strings.Join(rows, ",") + `]}`
}

func TestImportContinuesAfterFailedBatch(t *testing.T) {
	repos, db := setup()
	db.Centros.FailBatch = 2
	svc := service.NewCentroImportService(repos.Centros, nil, 2)

	result, err := svc.ImportReader(context.Background(), strings.NewReader(listadoDe(5)))
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Importados)
	assert.Equal(t, 1, result.LotesFallidos)
	assert.Equal(t, 3, db.Centros.Len())
}

func TestImportUploadArchivesFile(t *testing.T) {
	repos, db := setup()
	root := t.TempDir()
	storage := &service.StorageService{Provider: &service.LocalStorageProvider{Root: root}}
	svc := service.NewCentroImportService(repos.Centros, storage, 0)

	result, err := svc.ImportUpload(context.Background(), "../listado.json", []byte(listado))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Importados)
	assert.Equal(t, 2, db.Centros.Len())
	require.True(t, strings.HasPrefix(result.Archivo, "/uploads/imports/centros/"))
	assert.True(t, strings.HasSuffix(result.Archivo, "-listado.json"))

	key := strings.TrimPrefix(result.Archivo, "/uploads/")
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, listado, string(data))
}

func TestImportUploadRejectsInvalidFile(t *testing.T) {
	repos, db := setup()
	root := t.TempDir()
	storage := &service.StorageService{Provider: &service.LocalStorageProvider{Root: root}}
	svc := service.NewCentroImportService(repos.Centros, storage, 0)

	_, err := svc.ImportUpload(context.Background(), "x.json", []byte(`[]`))
	assert.True(t, errors.Is(err, util.ErrInvalidInput))
	assert.Zero(t, db.Centros.Len())

	entries, _ := os.ReadDir(root)
	assert.Empty(t, entries)
}
