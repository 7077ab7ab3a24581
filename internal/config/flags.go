package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetAddress is a host:port flag value. Host may be empty, "localhost" or
// an IP literal; IPv6 hosts are bracketed, e.g. "[::1]:8080".
type NetAddress struct {
	Host string
	Port int
}

// parseFlags registers every flag on fs and parses args.
//
// Flags:
//
//	-a                      HTTP address host:port
//	-grpc-address           gRPC health address host:port
//	-d                      database DSN
//	-db-driver              "pgx" or "sqlite3"
//	-redis-url              redis URL of the token denylist
//	-c, -config             JSON config file
//	-token-sign-key         HS256 signing key
//	-token-sign-key-file    file the generated signing key is kept in
//	-token-issuer           iss claim
//	-token-audience         aud claim
//	-access-token-duration  e.g. "1h"
//	-refresh-token-duration e.g. "720h"
//	-api-key                key exchanged at /auth/token
//	-hash-key               HMAC key for API subjects
//	-languages              comma separated codes, default language first
//	-log-level              zerolog level name
//	-request-timeout        e.g. "30s"
//	-max-body-bytes         request body cap after inflation
//	-page-size              default list page size
//	-max-page-size          largest accepted limit
func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var (
		cfg                   StructuredConfig
		httpAddr, grpcAddr    NetAddress
		languages             string
		maxPageSize, pageSize int
	)

	fs.Var(&httpAddr, "a", "HTTP address host:port")
	fs.Var(&grpcAddr, "grpc-address", "gRPC health address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "db-driver", "", "database driver (pgx, sqlite3)")
	fs.StringVar(&cfg.Storage.Redis.URL, "redis-url", "", "redis URL of the token denylist")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file (alias of -c)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "token signing key")
	fs.StringVar(&cfg.App.TokenSignKeyFile, "token-sign-key-file", "", "token signing key file")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "token issuer")
	fs.StringVar(&cfg.App.TokenAudience, "token-audience", "", "token audience")
	fs.DurationVar(&cfg.App.AccessTokenDuration, "access-token-duration", 0, "access token lifetime")
	fs.DurationVar(&cfg.App.RefreshTokenDuration, "refresh-token-duration", 0, "refresh token lifetime")
	fs.StringVar(&cfg.App.APIKey, "api-key", "", "API key exchanged for access tokens")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "HMAC key for API subjects")
	fs.StringVar(&languages, "languages", "", "comma separated language codes")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "request timeout")
	fs.Int64Var(&cfg.Server.MaxBodyBytes, "max-body-bytes", 0, "largest accepted request body")
	fs.IntVar(&pageSize, "page-size", 0, "default page size")
	fs.IntVar(&maxPageSize, "max-page-size", 0, "largest accepted limit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = httpAddr.String()
	cfg.Server.GRPCAddress = grpcAddr.String()
	cfg.Resources.DefaultPageSize = pageSize
	cfg.Resources.MaxPageSize = maxPageSize
	if languages != "" {
		cfg.App.Languages = normalizeLanguages(strings.Split(languages, ","))
	}
	return &cfg, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port %q", portStr)
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
