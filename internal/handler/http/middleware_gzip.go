package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/utils"
	"github.com/MKhiriev/go-rest-api/models"
)

const compressionLevel = 5

var gzipReaders = sync.Pool{
	New: func() any { return new(gzip.Reader) },
}

// withCompression gzips JSON responses for clients that accept it.
func withCompression() func(http.Handler) http.Handler {
	return middleware.Compress(compressionLevel, "application/json")
}

// withGzipBody inflates request bodies sent with Content-Encoding: gzip.
// A body that is not valid gzip is rejected with 400 before routing.
func withGzipBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zr := gzipReaders.Get().(*gzip.Reader)
		if err := zr.Reset(r.Body); err != nil {
			gzipReaders.Put(zr)
			logger.FromRequest(r).Debug().Err(err).Str("func", "withGzipBody").Msg("request body is not gzip")
			utils.WriteJSON(w, models.ErrorResponse{Error: "request body is not valid gzip"}, http.StatusBadRequest)
			return
		}

		r.Body = &pooledGzipBody{Reader: zr, orig: r.Body}
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1
		next.ServeHTTP(w, r)
	})
}

// pooledGzipBody returns its reader to gzipReaders on the first Close.
type pooledGzipBody struct {
	*gzip.Reader
	orig   io.ReadCloser
	closed bool
}

func (b *pooledGzipBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	_ = b.Reader.Close()
	gzipReaders.Put(b.Reader)
	return b.orig.Close()
}
