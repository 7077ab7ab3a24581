package service

import (
	"context"

	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/models"
)

type appInfoService struct {
	version models.VersionResponse

	logger *logger.Logger
}

// NewAppInfoService reports the linker injected build info. A version set
// in the configuration replaces the build version.
func NewAppInfoService(info models.AppBuildInfo, cfg config.App, logger *logger.Logger) AppInfoService {
	return &appInfoService{
		version: info.Response(cfg.Version),
		logger:  logger,
	}
}

func (s *appInfoService) GetAppVersion(ctx context.Context) models.VersionResponse {
	return s.version
}
