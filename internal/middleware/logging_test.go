package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"plastwarehouse/internal/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger_OneLinePerRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.Use(RequestID(), RequestLogger(zap.New(core)))

	var sawLogger bool
	e.GET("/plastics", func(c echo.Context) error {
		sawLogger = logger.FromContext(c.Request().Context()) != nil
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plastics?material=ABS", nil))

	assert.True(t, sawLogger)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http_request", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "/plastics", fields["route"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), fields["request_id"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRequestLogger_ErrorIsWarn(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.Use(RequestID(), RequestLogger(zap.New(core)))
	e.GET("/down", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database is not available")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/down", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
}

func TestRequestID_KeepsClientHeader(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc", rec.Header().Get(echo.HeaderXRequestID))
}

func TestVersionHeader(t *testing.T) {
	e := echo.New()
	g := e.Group("/api", VersionHeader(APIVersion))
	g.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
}
