// Package grpc exposes the standard gRPC health service so orchestrators
// can probe the API without speaking HTTP.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-rest-api/internal/logger"
)

// ServiceName is the health service name reported next to the overall ""
// entry.
const ServiceName = "rest-api"

// Handler serves grpc.health.v1.Health. The API reports SERVING from start
// until Shutdown is called.
type Handler struct {
	health *health.Server
	logger *logger.Logger
}

func NewHandler(logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC health handler created")

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Handler{
		health: hs,
		logger: logger,
	}
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Shutdown flips every service to NOT_SERVING so watchers see the drain
// before the listener closes.
func (h *Handler) Shutdown() {
	h.logger.Info().Msg("gRPC health status set to NOT_SERVING")
	h.health.Shutdown()
}
