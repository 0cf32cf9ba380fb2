package logger

import (
	"escolavision_backend/internal/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = gin.DebugMode
	assert.Equal(t, zapcore.DebugLevel, level(cfg))

	cfg.Server.Mode = gin.ReleaseMode
	assert.Equal(t, zapcore.InfoLevel, level(cfg))

	cfg.Log.Level = "warn"
	assert.Equal(t, zapcore.WarnLevel, level(cfg))

	cfg.Log.Level = "ruido"
	assert.Equal(t, zapcore.InfoLevel, level(cfg))
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/leer", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/roto", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	for _, path := range []string{"/leer?tabla=tests", "/roto", "/nada"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "tabla=tests", entries[0].ContextMap()["query"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusServiceUnavailable, entries[1].ContextMap()["status"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
}
