// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the record store behind the resource services:
// SQL repositories for PostgreSQL (pgx) and SQLite plus the token denylist
// backends.
//
// Every statement is built with squirrel and executed with bound
// parameters. Column and table names come from resource descriptors only,
// never from request input.
package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/migrations"
)

// DB wraps a connection pool with the dialect specific pieces the
// repositories need.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, driver string, classifier ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Dollar
	if driver == config.DriverSQLite {
		placeholder = sq.Question
	}

	return &DB{
		DB:                 conn,
		driver:             driver,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// NewConnect opens the database configured by cfg.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Driver returns the database/sql driver name of the connection.
func (db *DB) Driver() string {
	return db.driver
}

// likeEscape is the escape character patterns are built with. SQLite has
// no default one, so every LIKE names it.
const likeEscape = `\`

func like(column, operator string, pattern any) sq.Sqlizer {
	return sq.Expr(column+" "+operator+" ? ESCAPE '"+likeEscape+"'", pattern)
}

// caseInsensitiveLike returns the LIKE variant that ignores case on this
// dialect. SQLite LIKE already does for ASCII.
func (db *DB) caseInsensitiveLike(column string, pattern any) sq.Sqlizer {
	if db.driver == config.DriverSQLite {
		return like(column, "LIKE", pattern)
	}
	return like(column, "ILIKE", pattern)
}

func (db *DB) classify(err error) error {
	if db.errorClassificator == nil {
		return err
	}
	switch db.errorClassificator.Classify(err) {
	case UniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case ForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrMissingReference, err)
	}
	return err
}
