package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/query"
	"github.com/MKhiriev/go-rest-api/internal/service"
	"github.com/MKhiriev/go-rest-api/internal/utils"
)

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.resourceService(w, r)
	if !ok {
		return
	}

	resp, err := svc.List(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.resourceService(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rto, err := svc.Get(r.Context(), id, query.ParseView(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, rto, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	svc, ok := h.resourceService(w, r)
	if !ok {
		return
	}
	body, err := decodeBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rto, err := svc.Create(r.Context(), body, query.ParseView(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Debug().Str("func", "*Handler.create").Str("resource", svc.Descriptor().Name).Msg("record created")

	utils.WriteJSON(w, rto, http.StatusCreated)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.resourceService(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := decodeBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rto, err := svc.Update(r.Context(), id, body, query.ParseView(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, rto, http.StatusOK)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.resourceService(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resourceService resolves the {resource} segment. Reads of private
// resources need the claims optionalAuth may have stored.
func (h *Handler) resourceService(w http.ResponseWriter, r *http.Request) (service.ResourceService, bool) {
	svc, err := h.services.Resource(chi.URLParam(r, "resource"))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}

	if r.Method == http.MethodGet && svc.Descriptor().PrivateReads {
		if _, ok := utils.GetClaimsFromContext(r.Context()); !ok {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrUnauthorized, ErrEmptyAuthorizationHeader))
			return nil, false
		}
	}

	return svc, true
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func decodeBody(r *http.Request) (map[string]any, error) {
	var body map[string]any
	if err := decodeRequest(r, &body); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, ErrEmptyBody
	}
	return body, nil
}

// decodeRequest reads the JSON body of r into v.
func decodeRequest(r *http.Request, v any) error {
	err := utils.DecodeJSON(r, v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
	}

	logger.FromRequest(r).Debug().Err(err).Str("func", "decodeRequest").Msg("invalid JSON was passed")
	return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
}
