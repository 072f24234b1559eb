package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSample(t *testing.T) {
	cfg := DefaultSecurityConfig()
	cfg.MaxInputBytes = 32
	sm := NewSecurityMiddleware(cfg, nil)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid sample", input: "def run():\n    return 1\n"},
		{name: "empty sample", input: ""},
		{name: "oversized sample", input: strings.Repeat("x", 33), wantErr: true},
		{name: "null byte", input: "x = 1\x00", wantErr: true},
		{name: "invalid utf8", input: "x = 1\xff\xfe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sm.ValidateSample(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := DefaultSecurityConfig()
	cfg.MaxRequestsPerMin = 6 // burst floor of 5 applies
	sm := NewSecurityMiddleware(cfg, nil)

	router := gin.New()
	router.Use(sm.RateLimitByIP)
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	allowed := 0
	blocked := 0
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		router.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusOK:
			allowed++
		case http.StatusTooManyRequests:
			blocked++
		}
	}

	assert.GreaterOrEqual(t, allowed, 5)
	assert.Greater(t, blocked, 0)
}

func TestRateLimitIsolatesIPs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := DefaultSecurityConfig()
	cfg.MaxRequestsPerMin = 6
	sm := NewSecurityMiddleware(cfg, nil)

	router := gin.New()
	router.Use(sm.RateLimitByIP)
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Exhaust the first IP's bucket.
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		router.ServeHTTP(w, req)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sm := NewSecurityMiddleware(DefaultSecurityConfig(), nil)
	router := gin.New()
	router.Use(sm.SecurityHeaders)
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestValidateContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sm := NewSecurityMiddleware(DefaultSecurityConfig(), nil)
	router := gin.New()
	router.Use(sm.ValidateContentType)
	router.POST("/submit", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("json accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("xml rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("<x/>"))
		req.Header.Set("Content-Type", "application/xml")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})
}
