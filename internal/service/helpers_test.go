package service_test

import (
	"context"
	"encoding/base64"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/repository/inmem"
	"escolavision_backend/internal/service"
	"testing"

	"github.com/stretchr/testify/require"
)

func setup() (service.Repositories, *inmem.DB) {
	db := inmem.Open()
	return service.Repositories{
		Usuarios:  db.Usuarios,
		Centros:   db.Centros,
		Tests:     db.Tests,
		Preguntas: db.Preguntas,
		Areas:     db.Areas,
		PxA:       db.PxA,
		Intentos:  db.Intentos,
	}, db
}

func newTables(repos service.Repositories) *service.TableService {
	return service.NewTableService(repos, func() int { return 20000 })
}

func pngBase64() string {
	return base64.StdEncoding.EncodeToString(append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 24)...))
}

// seedTest 一个测试，每个问题映射到 areas 中对应的领域
func seedTest(t *testing.T, db *inmem.DB, areas ...[]uint) uint {
	t.Helper()
	ctx := context.Background()

	for db.Areas.Len() < 5 {
		require.NoError(t, db.Areas.Create(ctx, &model.Area{Nombre: "Área"}))
	}

	test := &model.Test{NombreTest: "Test vocacional", IsVisible: 1}
	require.NoError(t, db.Tests.Create(ctx, test))
	for _, idAreas := range areas {
		p := &model.Pregunta{IDTest: test.ID, Enunciado: "¿?"}
		require.NoError(t, db.Preguntas.Create(ctx, p))
		for _, idArea := range idAreas {
			require.NoError(t, db.PxA.Create(ctx, &model.PxA{IDPregunta: p.ID, IDArea: idArea}))
		}
	}
	return test.ID
}
