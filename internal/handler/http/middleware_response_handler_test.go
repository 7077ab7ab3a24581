package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name         string
		headerCalls  []int
		writes       []string
		wantStatus   int
		wantSize     int
		wantRecorded int
	}{
		{
			name:         "implicit 200 on write",
			writes:       []string{"OK"},
			wantStatus:   http.StatusOK,
			wantSize:     2,
			wantRecorded: http.StatusOK,
		},
		{
			name:         "writes accumulate size",
			writes:       []string{"foo", "bar", "baz"},
			wantStatus:   http.StatusOK,
			wantSize:     9,
			wantRecorded: http.StatusOK,
		},
		{
			name:         "explicit status kept after write",
			headerCalls:  []int{http.StatusCreated},
			writes:       []string{`{"id":1}`},
			wantStatus:   http.StatusCreated,
			wantSize:     8,
			wantRecorded: http.StatusCreated,
		},
		{
			name:         "first status wins",
			headerCalls:  []int{http.StatusNoContent, http.StatusInternalServerError},
			wantStatus:   http.StatusNoContent,
			wantRecorded: http.StatusNoContent,
		},
		{
			name:         "empty write still sends the header",
			writes:       []string{""},
			wantStatus:   http.StatusOK,
			wantRecorded: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rr}

			for _, code := range tt.headerCalls {
				w.WriteHeader(code)
			}
			for _, data := range tt.writes {
				_, err := w.Write([]byte(data))
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantStatus, w.status)
			assert.Equal(t, tt.wantSize, w.size)
			assert.True(t, w.wroteHeader)
			assert.Equal(t, tt.wantRecorded, rr.Code)
			assert.Equal(t, tt.wantSize, rr.Body.Len())
		})
	}
}

func TestResponseWriter_InitialState(t *testing.T) {
	w := &responseWriter{ResponseWriter: httptest.NewRecorder()}

	assert.Zero(t, w.status)
	assert.Zero(t, w.size)
	assert.False(t, w.wroteHeader)
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.Header().Set("X-Custom", "value")

	assert.Same(t, rr, w.Unwrap())
	assert.Equal(t, "value", rr.Header().Get("X-Custom"))
	assert.NoError(t, http.NewResponseController(w).Flush())
	assert.True(t, rr.Flushed)
}
