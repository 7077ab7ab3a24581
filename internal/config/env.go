package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads a StructuredConfig from environ. A nil environ means the
// process environment. Language codes are trimmed and lower-cased, so
// APP_LANGUAGES="EN, it" yields [en it].
func parseEnv(environ map[string]string) (*StructuredConfig, error) {
	cfg, err := env.ParseAsWithOptions[StructuredConfig](env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	cfg.App.Languages = normalizeLanguages(cfg.App.Languages)
	return &cfg, nil
}

func normalizeLanguages(codes []string) []string {
	if codes == nil {
		return nil
	}
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	return out
}
