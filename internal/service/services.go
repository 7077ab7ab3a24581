package service

import (
	"github.com/MKhiriev/go-rest-api/internal/adapter"
	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/resource"
	"github.com/MKhiriev/go-rest-api/internal/store"
	"github.com/MKhiriev/go-rest-api/internal/validators"
	"github.com/MKhiriev/go-rest-api/models"
)

// Services groups everything the transport layer calls into.
type Services struct {
	Resources      map[string]ResourceService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// Dependencies are the collaborators NewServices wires together.
type Dependencies struct {
	Registry     *resource.Registry
	Repositories *store.Repositories
	Tokens       TokenIssuer
	Validator    validators.Validator
	Providers    map[string]adapter.SocialProvider
	Observer     Observer
	BuildInfo    models.AppBuildInfo
}

// NewServices builds one ResourceService per registered resource next to
// the auth and app info services.
func NewServices(deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	resources := make(map[string]ResourceService)
	for _, name := range deps.Registry.Names() {
		d, _ := deps.Registry.Lookup(name)
		resources[name] = NewResourceService(d, deps.Repositories.RecordRepository, deps.Validator, deps.Observer, cfg, logger)
	}

	return &Services{
		Resources: resources,
		AuthService: NewAuthService(
			deps.Repositories.CustomerRepository,
			deps.Repositories.Denylist,
			deps.Tokens,
			deps.Validator,
			deps.Providers,
			deps.Observer,
			cfg.App,
			logger,
		),
		AppInfoService: NewAppInfoService(deps.BuildInfo, cfg.App, logger),
	}
}

// Resource returns the service registered under name.
func (s *Services) Resource(name string) (ResourceService, error) {
	svc, ok := s.Resources[name]
	if !ok {
		return nil, ErrUnknownResource
	}
	return svc, nil
}
