package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout accepted
// from the -config file. Durations may be strings ("1h") or nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey         string   `json:"token_sign_key"`
		TokenSignKeyFile     string   `json:"token_sign_key_file"`
		TokenIssuer          string   `json:"token_issuer"`
		TokenAudience        string   `json:"token_audience"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RememberMeDuration   Duration `json:"remember_me_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
		APIKey               string   `json:"api_key"`
		HashKey              string   `json:"hash_key"`
		Languages            []string `json:"languages"`
		Currency             string   `json:"currency"`
		LogLevel             string   `json:"log_level"`
		Version              string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN    string `json:"dsn"`
			Driver string `json:"driver"`
		} `json:"db,omitempty"`

		Redis struct {
			URL string `json:"url"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxBodyBytes   int64    `json:"max_body_bytes"`
	} `json:"server,omitempty"`

	Adapter struct {
		GoogleClientID    string   `json:"google_client_id"`
		FacebookAppID     string   `json:"facebook_app_id"`
		FacebookAppSecret string   `json:"facebook_app_secret"`
		AppleClientID     string   `json:"apple_client_id"`
		GoogleBaseURL     string   `json:"google_base_url"`
		FacebookBaseURL   string   `json:"facebook_base_url"`
		AppleBaseURL      string   `json:"apple_base_url"`
		RequestTimeout    Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Resources struct {
		DefaultPageSize int   `json:"default_page_size"`
		MaxPageSize     int   `json:"max_page_size"`
		RootCategoryID  int64 `json:"root_category_id"`
		HomeCategoryID  int64 `json:"home_category_id"`
	} `json:"resources,omitempty"`

	Workers struct {
		DenylistSweepInterval Duration `json:"denylist_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:         jsonCfg.App.TokenSignKey,
			TokenSignKeyFile:     jsonCfg.App.TokenSignKeyFile,
			TokenIssuer:          jsonCfg.App.TokenIssuer,
			TokenAudience:        jsonCfg.App.TokenAudience,
			AccessTokenDuration:  time.Duration(jsonCfg.App.AccessTokenDuration),
			RememberMeDuration:   time.Duration(jsonCfg.App.RememberMeDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.App.RefreshTokenDuration),
			APIKey:               jsonCfg.App.APIKey,
			HashKey:              jsonCfg.App.HashKey,
			Languages:            normalizeLanguages(jsonCfg.App.Languages),
			Currency:             jsonCfg.App.Currency,
			LogLevel:             jsonCfg.App.LogLevel,
			Version:              jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN:    jsonCfg.Storage.DB.DSN,
				Driver: jsonCfg.Storage.DB.Driver,
			},
			Redis: Redis{
				URL: jsonCfg.Storage.Redis.URL,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			MaxBodyBytes:   jsonCfg.Server.MaxBodyBytes,
		},
		Adapter: Adapter{
			GoogleClientID:    jsonCfg.Adapter.GoogleClientID,
			FacebookAppID:     jsonCfg.Adapter.FacebookAppID,
			FacebookAppSecret: jsonCfg.Adapter.FacebookAppSecret,
			AppleClientID:     jsonCfg.Adapter.AppleClientID,
			GoogleBaseURL:     jsonCfg.Adapter.GoogleBaseURL,
			FacebookBaseURL:   jsonCfg.Adapter.FacebookBaseURL,
			AppleBaseURL:      jsonCfg.Adapter.AppleBaseURL,
			RequestTimeout:    time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Resources: Resources{
			DefaultPageSize: jsonCfg.Resources.DefaultPageSize,
			MaxPageSize:     jsonCfg.Resources.MaxPageSize,
			RootCategoryID:  jsonCfg.Resources.RootCategoryID,
			HomeCategoryID:  jsonCfg.Resources.HomeCategoryID,
		},
		Workers: Workers{
			DenylistSweepInterval: time.Duration(jsonCfg.Workers.DenylistSweepInterval),
		},
	}

	return cfg, nil
}

// Duration accepts "1h30m" style strings or integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("duration must be a string or integer nanoseconds: %w", err)
	}
	*d = Duration(n)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
