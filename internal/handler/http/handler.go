package http

import (
	"time"

	"golang.org/x/text/language"

	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/metrics"
	"github.com/MKhiriev/go-rest-api/internal/service"
)

// DefaultMaxBodyBytes caps request bodies when the configuration does not.
const DefaultMaxBodyBytes = 1 << 20

type Handler struct {
	services *service.Services
	// metrics may be nil, then /metrics is not mounted.
	metrics *metrics.Metrics

	languages      []string
	matcher        language.Matcher
	requestTimeout time.Duration
	maxBodyBytes   int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	tags := make([]language.Tag, 0, len(cfg.App.Languages))
	for _, l := range cfg.App.Languages {
		tags = append(tags, language.Make(l))
	}

	maxBody := cfg.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	return &Handler{
		services:       services,
		metrics:        m,
		languages:      cfg.App.Languages,
		matcher:        language.NewMatcher(tags),
		requestTimeout: cfg.Server.RequestTimeout,
		maxBodyBytes:   maxBody,
		logger:         logger,
	}
}
