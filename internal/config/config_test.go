package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
	return dir
}

func TestNormalize(t *testing.T) {
	cfg := &Config{}
	cfg.JWT.ExpireTime = 24
	cfg.GeoAPI.CacheTTL = 2

	require.NoError(t, cfg.normalize())
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 2*time.Hour, cfg.GeoAPI.CacheTTL)
	assert.Equal(t, 1000, cfg.Import.BatchSize)
	assert.Equal(t, 20000, cfg.Upload.MaxImageChars)
}

func TestNormalizeRejectsShortSecretInRelease(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Mode: "release"}, JWT: JWTConfig{Secret: "corto"}}
	assert.Error(t, cfg.normalize())

	cfg = &Config{Server: ServerConfig{Mode: "debug"}, JWT: JWTConfig{Secret: "corto"}}
	assert.NoError(t, cfg.normalize())
}

func TestLoadConfig(t *testing.T) {
	uploads := filepath.Join(t.TempDir(), "uploads")
	dir := writeConfig(t, `
server:
  port: "9090"
  mode: debug
database:
  host: db
  port: 3306
  user: u
  password: p
  dbname: escolavision
jwt:
  secret: s
  expire_hours: 12
storage:
  type: local
  local_path: `+uploads+`
import:
  batch_size: 250
cors:
  allowed_origins:
    - https://escolavision.example
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 250, cfg.Import.BatchSize)
	assert.Equal(t, 24*time.Hour, cfg.GeoAPI.CacheTTL)
	assert.Equal(t, "https://apiv1.geoapi.es", cfg.GeoAPI.BaseURL)
	assert.Equal(t, []string{"https://escolavision.example"}, cfg.CORS.AllowedOrigins)
	assert.DirExists(t, uploads)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
storage:
  type: minio
`)
	t.Setenv("JWT_SECRET", "desde-el-entorno")
	t.Setenv("GEOAPI_KEY", "clave")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "desde-el-entorno", cfg.JWT.Secret)
	assert.Equal(t, "clave", cfg.GeoAPI.Key)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
