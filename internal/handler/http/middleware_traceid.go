package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-rest-api/internal/utils"
)

const (
	traceIDHeader = "X-Trace-ID"
	// longer incoming ids are replaced
	maxTraceIDLength = 128
)

// withTraceID attaches a child logger carrying trace_id to the request
// context and echoes the id in the response header. The id is taken from
// X-Trace-ID when the caller sent a usable one.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !validTraceID(traceID) {
			traceID = utils.NewID()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
