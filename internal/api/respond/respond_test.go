package respond

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusNotFound, "Endpoint not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "{\"error\":\"Endpoint not found\"}\n", w.Body.String())
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, []byte(`{"a":1}`), `W/"abc"`, 10*time.Minute, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `W/"abc"`, w.Header().Get("ETag"))
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "public, max-age=600, stale-while-revalidate=300", w.Header().Get("Cache-Control"))
	assert.Equal(t, `{"a":1}`, w.Body.String())
}

func TestWriteNotModified(t *testing.T) {
	w := httptest.NewRecorder()
	WriteNotModified(w, `W/"abc"`)

	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Equal(t, 0, w.Body.Len())
}
