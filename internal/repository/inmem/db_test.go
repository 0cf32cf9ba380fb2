package inmem

import (
	"context"
	"errors"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := Open()

	test := &model.Test{NombreTest: "Intereses", IsVisible: 1}
	require.NoError(t, db.Tests.Create(ctx, test))
	assert.Equal(t, uint(1), test.ID)

	require.NoError(t, db.Tests.Update(ctx, 1, map[string]interface{}{"isVisible": 0}))
	got, err := db.Tests.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Intereses", got.NombreTest)
	assert.Equal(t, 0, got.IsVisible)

	assert.True(t, errors.Is(db.Tests.Update(ctx, 1, nil), util.ErrNothingToUpdate))
	assert.NoError(t, db.Tests.Update(ctx, 42, map[string]interface{}{"nombretest": "x"}))
}

func TestForeignKeys(t *testing.T) {
	ctx := context.Background()
	db := Open()

	err := db.Preguntas.Create(ctx, &model.Pregunta{IDTest: 1})
	assert.True(t, errors.Is(err, util.ErrMissingParent))

	require.NoError(t, db.Tests.Create(ctx, &model.Test{NombreTest: "T"}))
	require.NoError(t, db.Preguntas.Create(ctx, &model.Pregunta{IDTest: 1}))
	require.NoError(t, db.Areas.Create(ctx, &model.Area{Nombre: "Ciencias"}))
	require.NoError(t, db.PxA.Create(ctx, &model.PxA{IDPregunta: 1, IDArea: 1}))

	assert.True(t, errors.Is(db.Tests.Delete(ctx, 1), util.ErrInUse))
	assert.True(t, errors.Is(db.Preguntas.Delete(ctx, 1), util.ErrInUse))
	assert.True(t, errors.Is(db.Areas.Delete(ctx, 1), util.ErrInUse))

	require.NoError(t, db.PxA.Delete(ctx, 1))
	require.NoError(t, db.Preguntas.Delete(ctx, 1))
	require.NoError(t, db.Tests.Delete(ctx, 1))
}

func TestUsuarioConstraints(t *testing.T) {
	ctx := context.Background()
	db := Open()

	centro := uint(1)
	err := db.Usuarios.Create(ctx, &model.Usuario{Nombre: "Ana", DNI: "1A", IDCentro: &centro})
	assert.True(t, errors.Is(err, util.ErrMissingParent))

	require.NoError(t, db.Centros.Create(ctx, &model.Centro{Localidad: "Sevilla"}))
	require.NoError(t, db.Usuarios.Create(ctx, &model.Usuario{Nombre: "Ana", DNI: "1A", IDCentro: &centro}))

	err = db.Usuarios.Create(ctx, &model.Usuario{Nombre: "Otra", DNI: "1A"})
	assert.True(t, errors.Is(err, util.ErrDuplicate))

	require.NoError(t, db.Usuarios.Create(ctx, &model.Usuario{Nombre: "Luis", DNI: "2B"}))
	err = db.Usuarios.Update(ctx, 2, map[string]interface{}{"dni": "1A"})
	assert.True(t, errors.Is(err, util.ErrDuplicate))

	assert.True(t, errors.Is(db.Centros.Delete(ctx, 1), util.ErrInUse))
}

func TestIntentosByCentro(t *testing.T) {
	ctx := context.Background()
	db := Open()

	require.NoError(t, db.Centros.Create(ctx, &model.Centro{}))
	centro := uint(1)
	require.NoError(t, db.Usuarios.Create(ctx, &model.Usuario{Nombre: "Ana", IDCentro: &centro}))
	require.NoError(t, db.Usuarios.Create(ctx, &model.Usuario{Nombre: "Luis"}))
	require.NoError(t, db.Intentos.Create(ctx, &model.Intento{IDTest: 1, IDUsuario: 1}))
	require.NoError(t, db.Intentos.Create(ctx, &model.Intento{IDTest: 1, IDUsuario: 2}))

	rows, err := db.Intentos.FindByCentro(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(1), rows[0].IDUsuario)
}

func TestCreateBatchFailure(t *testing.T) {
	ctx := context.Background()
	db := Open()
	db.Centros.FailBatch = 2

	require.NoError(t, db.Centros.CreateBatch(ctx, []model.Centro{{}, {}}))
	assert.Error(t, db.Centros.CreateBatch(ctx, []model.Centro{{}}))
	require.NoError(t, db.Centros.CreateBatch(ctx, []model.Centro{{}}))

	all, _ := db.Centros.FindAll(ctx)
	assert.Len(t, all, 3)
}
