package security

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"aidetect/internal/monitoring"
)

// SecurityConfig holds security configuration
type SecurityConfig struct {
	MaxInputBytes     int           `json:"max_input_bytes"`
	MaxRequestsPerMin int           `json:"max_requests_per_min"`
	AllowedOrigins    []string      `json:"allowed_origins"`
	TrustedProxies    []string      `json:"trusted_proxies"`
	RequestTimeout    time.Duration `json:"request_timeout"`
}

// DefaultSecurityConfig returns secure defaults
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		MaxInputBytes:     1 << 20, // matches the scanner's per-file cap
		MaxRequestsPerMin: 60,
		AllowedOrigins:    []string{"http://localhost:3000", "http://localhost:5173"},
		TrustedProxies:    []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"},
		RequestTimeout:    30 * time.Second,
	}
}

// SecurityMiddleware provides request hardening for the HTTP API
type SecurityMiddleware struct {
	config     SecurityConfig
	metrics    *monitoring.Metrics
	ipLimiters map[string]*rate.Limiter
	mu         sync.Mutex
}

// NewSecurityMiddleware creates a new security middleware instance
func NewSecurityMiddleware(config SecurityConfig, metrics *monitoring.Metrics) *SecurityMiddleware {
	return &SecurityMiddleware{
		config:     config,
		metrics:    metrics,
		ipLimiters: make(map[string]*rate.Limiter),
	}
}

// ValidateSample validates a submitted code sample before analysis. Unlike
// the scanner path, samples arrive over the wire with no file size gate.
func (sm *SecurityMiddleware) ValidateSample(input string) error {
	if len(input) > sm.config.MaxInputBytes {
		return errTooLarge
	}
	if strings.Contains(input, "\x00") {
		return errNullBytes
	}
	if !utf8.ValidString(input) {
		return errBadEncoding
	}
	return nil
}

var (
	errTooLarge    = validationError("sample exceeds maximum size")
	errNullBytes   = validationError("sample contains null bytes")
	errBadEncoding = validationError("sample is not valid UTF-8")
)

type validationError string

func (e validationError) Error() string { return string(e) }

// RateLimitByIP implements per-IP token bucket rate limiting
func (sm *SecurityMiddleware) RateLimitByIP(c *gin.Context) {
	clientIP := c.ClientIP()

	sm.mu.Lock()
	limiter, exists := sm.ipLimiters[clientIP]
	if !exists {
		rps := rate.Limit(float64(sm.config.MaxRequestsPerMin) / 60.0)
		burst := sm.config.MaxRequestsPerMin / 2
		if burst < 5 {
			burst = 5
		}
		limiter = rate.NewLimiter(rps, burst)
		sm.ipLimiters[clientIP] = limiter
	}
	sm.mu.Unlock()

	if !limiter.Allow() {
		if sm.metrics != nil {
			sm.metrics.IncrementRateLimitBlock()
		}
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate limit exceeded for IP",
			"retry_after": "60",
		})
		c.Abort()
		return
	}

	c.Next()
}

// SecurityHeaders adds security headers to responses
func (sm *SecurityMiddleware) SecurityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-XSS-Protection", "1; mode=block")

	if c.Request.TLS != nil {
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	}

	c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'")
	c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Header("Permissions-Policy", "camera=(), microphone=()")

	c.Next()
}

// ValidateContentType validates request content type
func (sm *SecurityMiddleware) ValidateContentType(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")

	allowedTypes := []string{
		"application/json",
		"application/x-www-form-urlencoded",
	}

	if contentType != "" && c.Request.Method == http.MethodPost {
		found := false
		for _, allowed := range allowedTypes {
			if strings.Contains(strings.ToLower(contentType), allowed) {
				found = true
				break
			}
		}

		if !found {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{
				"error": "unsupported content type",
			})
			c.Abort()
			return
		}
	}

	c.Next()
}

// RequestTimeout enforces a deadline on each request
func (sm *SecurityMiddleware) RequestTimeout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), sm.config.RequestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
