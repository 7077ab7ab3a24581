package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected configs in order, later non-zero values
// overriding earlier ones, and validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg, err := parseEnv(nil)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

// withFlags parses args, normally os.Args[1:]. -h ends up in b.err as
// flag.ErrHelp after the usage is printed.
func (b *configBuilder) withFlags(args []string) *configBuilder {
	fs := flag.NewFlagSet("rest-api-server", flag.ContinueOnError)
	flagCfg, err := parseFlags(fs, args)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error parsing flags: %w", err))
		return b
	}

	b.configs = append(b.configs, flagCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:          "rest-api",
			TokenAudience:        "rest-api-user",
			AccessTokenDuration:  time.Hour,
			RememberMeDuration:   7 * 24 * time.Hour,
			RefreshTokenDuration: 30 * 24 * time.Hour,
			Languages:            []string{"en", "it"},
			Currency:             "EUR",
			LogLevel:             "info",
		},
		Storage: Storage{
			DB: DB{Driver: DriverPostgres},
		},
		Server: Server{
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Adapter: Adapter{
			GoogleBaseURL:   "https://oauth2.googleapis.com",
			FacebookBaseURL: "https://graph.facebook.com",
			AppleBaseURL:    "https://appleid.apple.com",
			RequestTimeout:  10 * time.Second,
		},
		Resources: Resources{
			DefaultPageSize: 20,
			MaxPageSize:     200,
			RootCategoryID:  1,
			HomeCategoryID:  2,
		},
		Workers: Workers{
			DenylistSweepInterval: time.Minute,
		},
	}
}
