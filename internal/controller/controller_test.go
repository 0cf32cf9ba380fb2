package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"escolavision_backend/internal/config"
	"escolavision_backend/internal/controller"
	"escolavision_backend/internal/middleware"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/repository/inmem"
	"escolavision_backend/internal/service"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "secret"

type fixture struct {
	router *gin.Engine
	db     *inmem.DB
	tables *service.TableService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := inmem.Open()
	repos := service.Repositories{
		Usuarios:  db.Usuarios,
		Centros:   db.Centros,
		Tests:     db.Tests,
		Preguntas: db.Preguntas,
		Areas:     db.Areas,
		PxA:       db.PxA,
		Intentos:  db.Intentos,
	}
	cfg := &config.Config{JWT: config.JWTConfig{Secret: jwtSecret, ExpireTime: time.Hour}}

	tables := service.NewTableService(repos, func() int { return 20000 })
	crud := controller.NewCRUDController(tables)
	auth := controller.NewAuthController(service.NewAuthService(repos.Usuarios, cfg))
	score := controller.NewScoreController(service.NewScoreService(repos))
	dashboard := controller.NewDashboardController(service.NewDashboardService(repos))
	imports := controller.NewCentroImportController(service.NewCentroImportService(repos.Centros, nil, 0))

	r := gin.New()
	r.GET("/leer.php", crud.Leer)
	r.POST("/insertar.php", crud.Insertar)
	r.PUT("/actualizar.php", crud.Actualizar)
	r.DELETE("/borrar.php", crud.Borrar)
	r.POST("/login.php", auth.Login)
	r.POST("/api/tests/:id/respuestas", score.Submit)
	r.GET("/api/estadisticas", dashboard.GetEstadisticas)
	r.POST("/api/centros/import", middleware.AuthMiddleware(cfg), middleware.OrientadorMiddleware(), imports.Import)

	return &fixture{router: r, db: db, tables: tables}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func (f *fixture) insert(t *testing.T, tabla string, datos map[string]interface{}) uint {
	t.Helper()
	table, err := f.tables.Table(tabla)
	require.NoError(t, err)
	id, err := table.Insert(context.Background(), datos)
	require.NoError(t, err)
	return id
}

func TestLeer(t *testing.T) {
	f := setup(t)
	f.insert(t, service.TablaTests, map[string]interface{}{"nombretest": "Intereses"})

	rec, body := f.do(t, http.MethodGet, "/leer.php?tabla=tests&id=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{}, body["tests"])

	rec, body = f.do(t, http.MethodGet, "/leer.php?tabla=tests&id=1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rows := body["tests"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Intereses", rows[0].(map[string]interface{})["nombretest"])
	assert.Equal(t, float64(1), rows[0].(map[string]interface{})["isVisible"])

	rec, body = f.do(t, http.MethodGet, "/leer.php?tabla=profesores", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Tabla no reconocida o no especificada", body["message"])

	rec, _ = f.do(t, http.MethodGet, "/leer.php", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeerUsuariosHidesPassword(t *testing.T) {
	f := setup(t)
	f.insert(t, service.TablaUsuarios, map[string]interface{}{"nombre": "Ana", "contraseña": "secreto", "dni": "1A"})

	_, body := f.do(t, http.MethodGet, "/leer.php?tabla=usuarios&dni=1A", nil)
	rows := body["usuarios"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Contains(t, row, "contraseña")
	assert.Equal(t, "", row["contraseña"])
}

func TestInsertar(t *testing.T) {
	f := setup(t)

	rec, body := f.do(t, http.MethodPost, "/insertar.php", gin.H{"tabla": "tests", "datos": gin.H{"nombretest": "Intereses"}})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "El registro fue insertado con éxito en la tabla Tests.", body["message"])
	assert.Equal(t, float64(1), body["id"])

	rec, body = f.do(t, http.MethodPost, "/insertar.php", gin.H{"tabla": "otra", "datos": gin.H{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Tabla no reconocida o no especificada.", body["message"])

	rec, body = f.do(t, http.MethodPost, "/insertar.php", gin.H{"tabla": "tests"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Datos no especificados para la inserción.", body["message"])

	rec, _ = f.do(t, http.MethodPost, "/insertar.php", "{no es json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/insertar.php", gin.H{"tabla": "preguntas", "datos": gin.H{"idtest": 9}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsertarDuplicateDNI(t *testing.T) {
	f := setup(t)
	datos := gin.H{"nombre": "Ana", "contraseña": "secreto", "dni": "12345678A"}

	rec, _ := f.do(t, http.MethodPost, "/insertar.php", gin.H{"tabla": "usuarios", "datos": datos})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := f.do(t, http.MethodPost, "/insertar.php", gin.H{"tabla": "usuarios", "datos": datos})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "El DNI ya está registrado", body["message"])
}

func TestActualizar(t *testing.T) {
	f := setup(t)
	f.insert(t, service.TablaUsuarios, map[string]interface{}{"nombre": "Ana", "contraseña": "secreto"})

	rec, body := f.do(t, http.MethodPut, "/actualizar.php", gin.H{"tabla": "usuarios", "id": "1", "datos": gin.H{"nombre": "Ana María"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "El registro de la tabla Usuarios fue actualizado con éxito.", body["message"])

	stored, err := f.db.Usuarios.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", stored.Nombre)

	rec, body = f.do(t, http.MethodPut, "/actualizar.php", gin.H{"tabla": "usuarios", "id": 1, "datos": gin.H{"nombre": ""}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No hay datos para actualizar", body["message"])

	rec, body = f.do(t, http.MethodPut, "/actualizar.php", gin.H{"tabla": "usuarios", "datos": gin.H{"nombre": "x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Datos no especificados para la actualización o ID no proporcionado.", body["message"])
}

func TestBorrar(t *testing.T) {
	f := setup(t)
	idTest := f.insert(t, service.TablaTests, map[string]interface{}{"nombretest": "Intereses"})
	f.insert(t, service.TablaPreguntas, map[string]interface{}{"idtest": idTest, "enunciado": "¿?"})
	f.insert(t, service.TablaTests, map[string]interface{}{"nombretest": "Vacío"})

	rec, body := f.do(t, http.MethodDelete, "/borrar.php", gin.H{"tabla": "tests", "id": idTest})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, body["message"], "Error al eliminar el registro: ")
	_, err := f.db.Tests.FindByID(context.Background(), idTest)
	assert.NoError(t, err)

	rec, body = f.do(t, http.MethodDelete, "/borrar.php", gin.H{"tabla": "tests", "id": "2"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "El registro con ID 2 fue borrado con éxito.", body["message"])

	rec, body = f.do(t, http.MethodDelete, "/borrar.php", gin.H{"tabla": "tests"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ID no especificado.", body["message"])
}

func TestLogin(t *testing.T) {
	f := setup(t)
	f.insert(t, service.TablaUsuarios, map[string]interface{}{
		"nombre":        "Ana",
		"email":         "ana@example.com",
		"contraseña":    "secreto",
		"dni":           "12345678A",
		"tipo_usuario":  "Profesor",
		"is_orientador": 1,
	})

	cases := []struct {
		name    string
		body    interface{}
		status  string
		message string
	}{
		{"ok", gin.H{"usuario": "ana@example.com", "contrasena": "secreto"}, "success", "Login exitoso"},
		{"wrong password", gin.H{"usuario": "12345678A", "contrasena": "x"}, "error", "Credenciales incorrectas"},
		{"unknown user", gin.H{"usuario": "00000000Z", "contrasena": "x"}, "error", "Usuario no encontrado"},
		{"missing field", gin.H{"usuario": "12345678A"}, "error", "Faltan parámetros necesarios"},
		{"invalid json", "{", "error", "JSON inválido"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, body := f.do(t, http.MethodPost, "/login.php", c.body)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, c.status, body["status"])
			assert.Equal(t, c.message, body["message"])
		})
	}

	_, body := f.do(t, http.MethodPost, "/login.php", gin.H{"usuario": "12345678A", "contrasena": "secreto"})
	assert.Equal(t, float64(1), body["is_orientador"])
	assert.Equal(t, "Profesor", body["tipo"])
	assert.NotEmpty(t, body["token"])
}

func TestSubmitRespuestas(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.db.Tests.Create(ctx, &model.Test{NombreTest: "T", IsVisible: 1}))
	require.NoError(t, f.db.Areas.Create(ctx, &model.Area{Nombre: "A"}))
	require.NoError(t, f.db.Preguntas.Create(ctx, &model.Pregunta{IDTest: 1}))
	require.NoError(t, f.db.PxA.Create(ctx, &model.PxA{IDPregunta: 1, IDArea: 1}))

	rec, body := f.do(t, http.MethodPost, "/api/tests/1/respuestas", gin.H{"respuestas": gin.H{"1": 8}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "8;0;0;0;0", body["resultados"])
	assert.Equal(t, 0, f.db.Intentos.Len())

	rec, body = f.do(t, http.MethodPost, "/api/tests/1/respuestas", gin.H{"idusuario": 3, "respuestas": gin.H{}})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "5;0;0;0;0", body["resultados"])
	assert.Equal(t, float64(1), body["id"])

	rec, _ = f.do(t, http.MethodPost, "/api/tests/9/respuestas", gin.H{})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/tests/abc/respuestas", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/tests/1/respuestas", gin.H{"respuestas": gin.H{"1": 42}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEstadisticas(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.db.Tests.Create(ctx, &model.Test{NombreTest: "T", IsVisible: 1}))
	require.NoError(t, f.db.Intentos.Create(ctx, &model.Intento{IDTest: 1, IDUsuario: 1, Resultados: "4;4;4;4;4"}))

	rec, body := f.do(t, http.MethodGet, "/api/estadisticas", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	stats := body["estadisticas"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalIntentos"])
	assert.Equal(t, float64(4), stats["puntuacionMedia"])

	rec, _ = f.do(t, http.MethodGet, "/api/estadisticas?id_centro=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func loginToken(t *testing.T, f *fixture, dni string) string {
	t.Helper()
	_, body := f.do(t, http.MethodPost, "/login.php", gin.H{"usuario": dni, "contrasena": "secreto"})
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestImportCentrosRequiresOrientador(t *testing.T) {
	f := setup(t)
	f.insert(t, service.TablaUsuarios, map[string]interface{}{
		"nombre": "Orientadora", "contraseña": "secreto", "dni": "1A", "tipo_usuario": "Profesor", "is_orientador": 1,
	})
	f.insert(t, service.TablaUsuarios, map[string]interface{}{
		"nombre": "Profesor", "contraseña": "secreto", "dni": "2B", "tipo_usuario": "Profesor",
	})

	upload := func(token string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", "listado.json")
		require.NoError(t, err)
		_, err = part.Write([]byte(`{"Listado de centros": [{"LOCALIDAD": "Sevilla", "TELÉFONO": "954000001/954000002"}]}`))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/centros/import", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, upload("").Code)
	assert.Equal(t, http.StatusUnauthorized, upload("no-es-un-token").Code)
	assert.Equal(t, http.StatusForbidden, upload(loginToken(t, f, "2B")).Code)

	rec := upload(loginToken(t, f, "1A"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["importados"])

	centro, err := f.db.Centros.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "954000002", centro.TelefonoSecundario)
}
