package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	handler := correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("echoes caller-provided ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/report-generation/health", nil)
		req.Header.Set(CorrelationIDHeader, "trace-42")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "trace-42", w.Header().Get(CorrelationIDHeader))
	})

	t.Run("generates an ID when absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/report-generation/health", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		cid := w.Header().Get(CorrelationIDHeader)
		assert.NotEmpty(t, cid)
		assert.Len(t, cid, 32) // 16 random bytes, hex encoded
	})
}
