package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/leer.php", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func serve(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/leer.php", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowAll(t *testing.T) {
	r := newRouter(CORS([]string{"*"}))

	rec := serve(r, http.MethodGet, "https://cualquiera.example")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = serve(r, http.MethodOptions, "https://cualquiera.example")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSWhitelist(t *testing.T) {
	r := newRouter(CORS([]string{"https://escolavision.example"}))

	rec := serve(r, http.MethodGet, "https://escolavision.example")
	assert.Equal(t, "https://escolavision.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))

	rec = serve(r, http.MethodGet, "https://otro.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecureHeaders(t *testing.T) {
	rec := serve(newRouter(Secure()), http.MethodGet, "")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiter(t *testing.T) {
	r := newRouter(RateLimiter(2, time.Minute))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "").Code)
}

func TestRateLimiterDisabled(t *testing.T) {
	r := newRouter(RateLimiter(0, time.Minute))
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "").Code)
	}
}

func TestVisitorStore(t *testing.T) {
	store := newVisitorStore(1, time.Minute)
	now := time.Now()

	assert.True(t, store.allow("a", now))
	assert.False(t, store.allow("a", now))
	assert.True(t, store.allow("b", now))
	assert.True(t, store.allow("a", now.Add(time.Minute)))

	store.sweep(now.Add(210*time.Second), 3*time.Minute)
	assert.Len(t, store.visitors, 1)

	store.sweep(now.Add(10*time.Minute), 3*time.Minute)
	assert.Empty(t, store.visitors)
}
