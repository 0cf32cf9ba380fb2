package app

import (
	"escolavision_backend/internal/config"
	"escolavision_backend/internal/repository/inmem"
	"escolavision_backend/internal/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: gin.TestMode},
		JWT:     config.JWTConfig{Secret: "secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		GeoAPI:  config.GeoAPIConfig{BaseURL: "http://127.0.0.1:1", CacheTTL: time.Hour},
		Upload:  config.UploadConfig{MaxImageChars: 20000},
		Import:  config.ImportConfig{BatchSize: 10},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	db := inmem.Open()
	a := &App{Config: cfg}
	a.setup(service.Repositories{
		Usuarios:  db.Usuarios,
		Centros:   db.Centros,
		Tests:     db.Tests,
		Preguntas: db.Preguntas,
		Areas:     db.Areas,
		PxA:       db.PxA,
		Intentos:  db.Intentos,
	})
	return a
}

func serve(a *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func TestLegacyRoutes(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, http.MethodPost, "/insertar.php", `{"tabla":"tests","datos":{"nombretest":"Intereses"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(a, http.MethodGet, "/leer.php?tabla=tests", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nombretest":"Intereses"`)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = serve(a, http.MethodOptions, "/borrar.php", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProtectedImportRoute(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, http.MethodPost, "/api/centros/import", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGeoInvalidCodeDoesNotReachUpstream(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, http.MethodGet, "/api/geo/provincias?CCOM=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(a, http.MethodGet, "/api/geo/comunidades", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestApplyConfig(t *testing.T) {
	a := newTestApp(t)

	var seen *config.Config
	a.RegisterConfigCallback(func(cfg *config.Config) { seen = cfg })

	next := *a.Config
	next.Upload.MaxImageChars = 10
	a.ApplyConfig(&next)

	assert.Same(t, &next, seen)
	assert.Equal(t, int64(10), a.maxImageChars.Load())

	rec := serve(a, http.MethodPost, "/insertar.php",
		`{"tabla":"areas","datos":{"nombre":"Ciencias","logo":"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t)
	rec := serve(a, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
