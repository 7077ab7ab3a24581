package handler

import (
	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/handler/grpc"
	"github.com/MKhiriev/go-rest-api/internal/handler/http"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/metrics"
	"github.com/MKhiriev/go-rest-api/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a transport handler for every configured address.
// m may be nil, then the HTTP handler does not expose /metrics.
func NewHandlers(services *service.Services, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, m, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoTransports
	}

	return handlers, nil
}
