package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kore-landing-backend/internal/config"
	"kore-landing-backend/internal/logger"
	"kore-landing-backend/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	r := newRouter(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		seen = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
}

func TestRequestID_ReusesIncomingHeader(t *testing.T) {
	r := newRouter(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestLogger_WritesAccessLineWithoutBody(t *testing.T) {
	buf := &bytes.Buffer{}
	std := logrus.StandardLogger()
	prevOut, prevFormatter, prevLevel := std.Out, std.Formatter, std.Level
	t.Cleanup(func() {
		std.SetOutput(prevOut)
		std.SetFormatter(prevFormatter)
		std.SetLevel(prevLevel)
	})
	logger.Setup("info")
	std.SetOutput(buf)

	r := newRouter(RequestID(), Logger())
	r.POST("/api/leads", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"email":"ana@example.com"}`))
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "HTTP request", entry["msg"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "/api/leads", entry["path"])
	assert.Equal(t, float64(http.StatusBadRequest), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
	assert.NotContains(t, buf.String(), "ana@example.com")
}

func TestRecovery_Returns500(t *testing.T) {
	r := newRouter(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	cfg := &config.Config{AllowedOrigins: []string{"https://kore.app"}}
	r := newRouter(CORS(cfg))
	r.POST("/api/leads", func(c *gin.Context) { c.Status(http.StatusCreated) })

	testCases := []struct {
		origin string
		want   string
	}{
		{origin: "https://kore.app", want: "https://kore.app"},
		{origin: "https://evil.example", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/leads", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_WildcardAllowsAnyOrigin(t *testing.T) {
	r := newRouter(CORS(&config.Config{AllowedOrigins: []string{"*"}}))
	r.POST("/api/leads", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/leads", nil)
	req.Header.Set("Origin", "https://anything.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics_CountsByRoute(t *testing.T) {
	reg := metrics.NewRegistry()
	r := newRouter(Metrics(reg))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	expected := `
# HELP kore_http_requests_total Total number of HTTP requests
# TYPE kore_http_requests_total counter
kore_http_requests_total{method="GET",path="/health",status="200"} 3
kore_http_requests_total{method="GET",path="unknown",status="404"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg.Gatherer(), strings.NewReader(expected), "kore_http_requests_total"))
}

func TestMetrics_NilRegistryIsNoop(t *testing.T) {
	r := newRouter(Metrics(nil))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
