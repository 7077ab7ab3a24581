package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-rest-api/internal/utils"
	"github.com/MKhiriev/go-rest-api/models"
)

var routedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
}

// CheckHTTPMethod returns the router's MethodNotAllowed handler. It answers
// 405 with a JSON body and an Allow header listing the methods the matched
// path does serve.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := allowedMethods(router, r.URL.Path)
		if len(allowed) == 0 {
			utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
			return
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)}, http.StatusMethodNotAllowed)
	}
}

func allowedMethods(router chi.Routes, path string) []string {
	var allowed []string
	for _, method := range routedMethods {
		if routeAllows(router, method, path) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// routeAllows reports whether routes serves method on path. A path equal to
// a mount prefix resolves to the stub chi registers for every method, so it
// is looked up as "/" in the mounted router instead.
func routeAllows(routes chi.Routes, method, path string) bool {
	pattern := routes.Find(chi.NewRouteContext(), method, path)
	if pattern == "" {
		return false
	}

	for _, route := range routes.Routes() {
		if route.SubRoutes == nil {
			continue
		}
		prefix := strings.TrimSuffix(route.Pattern, "/*")
		if pattern == prefix || pattern == prefix+"/" {
			return routeAllows(route.SubRoutes, method, "/")
		}
	}
	return true
}
