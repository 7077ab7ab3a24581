package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/service"
	"github.com/MKhiriev/go-rest-api/internal/utils"
	"github.com/MKhiriev/go-rest-api/models"
)

func (h *Handler) exchangeAPIKey(w http.ResponseWriter, r *http.Request) {
	var req models.APIKeyRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	h.writeTokenPair(w, r, func() (models.TokenPair, error) {
		return h.services.AuthService.ExchangeAPIKey(r.Context(), req)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	h.writeTokenPair(w, r, func() (models.TokenPair, error) {
		return h.services.AuthService.Register(r.Context(), req)
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	h.writeTokenPair(w, r, func() (models.TokenPair, error) {
		return h.services.AuthService.Login(r.Context(), req)
	})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	h.writeTokenPair(w, r, func() (models.TokenPair, error) {
		return h.services.AuthService.Refresh(r.Context(), req)
	})
}

func (h *Handler) socialLogin(w http.ResponseWriter, r *http.Request) {
	var req models.SocialLoginRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	provider := chi.URLParam(r, "provider")
	h.writeTokenPair(w, r, func() (models.TokenPair, error) {
		return h.services.AuthService.SocialLogin(r.Context(), provider, req)
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthorized)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), claims); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeTokenPair(w http.ResponseWriter, r *http.Request, exchange func() (models.TokenPair, error)) {
	pair, err := exchange()
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("func", "*Handler.writeTokenPair").Str("path", r.URL.Path).Msg("token issued")
	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, pair, http.StatusOK)
}
