package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogging(t *testing.T) {

	t.Run("Generates Correlation ID When Absent", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/", nil)

		var ctxLogger *slog.Logger
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxLogger = LoggerFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		// Act
		Logging(next).ServeHTTP(rr, req)

		// Assert
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		assert.NotNil(t, ctxLogger)
		assert.NotEqual(t, slog.Default(), ctxLogger)
	})

	t.Run("Propagates Incoming Correlation ID", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/", nil)
		req.Header.Set("X-Request-ID", "test-correlation-id")

		// Act
		Logging(okHandler()).ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, "test-correlation-id", rr.Header().Get("X-Request-ID"))
	})

	t.Run("Request Scoped Logger Carries The Correlation ID", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		prev := slog.Default()
		slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
		defer slog.SetDefault(prev)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/", nil)
		req.Header.Set("X-Request-ID", "corr-123")

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			LoggerFromContext(r.Context()).Info("handled")
			w.WriteHeader(http.StatusOK)
		})

		// Act
		Logging(next).ServeHTTP(rr, req)

		// Assert: the handler's own log line carries the request fields
		assert.Contains(t, buf.String(), "handled")
		assert.Contains(t, buf.String(), "corr-123")
	})

	t.Run("Captures Handler Status Code", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/999", nil)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		// Act
		Logging(next).ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
