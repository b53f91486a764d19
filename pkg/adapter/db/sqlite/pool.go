// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sqlite implements the repo.Pool, repo.Conn, and repo.Tx
// interfaces for an embedded SQLite database file using the GORM
// framework. The storage repositories in its sub-packages accept
// these types through the generic Queryer constraint.
package sqlite

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	driver "github.com/glebarez/sqlite"
	"github.com/momeni/dispatchlog/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSlowThreshold is used when NewPool is called with a zero
// slow query threshold.
const DefaultSlowThreshold = 200 * time.Millisecond

// Pool represents an SQLite database connection pool. SQLite admits
// one writer at a time, so the pool keeps a single open connection
// and statements of concurrent callers are serialized.
type Pool struct {
	*gorm.DB
}

// NewPool opens (or creates) the SQLite database file at path and
// tests its connection. Statements which take longer than the slow
// threshold are logged as warnings.
func NewPool(
	ctx context.Context, path string, slow time.Duration,
) (*Pool, error) {
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	gdb, err := gorm.Open(driver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open(%q): %w", path, err)
	}
	gdb = gdb.Session(&gorm.Session{
		Logger: logger.New(
			log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
				SlowThreshold:             slow,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
				ParameterizedQueries:      true,
			}),
	})
	pool := &Pool{DB: gdb}
	db, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("obtaining sql.DB: %w", err)
	}
	db.SetMaxOpenConns(1)
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

// ConnHandler is an alias for the repo.ConnHandler.
type ConnHandler = repo.ConnHandler

// NoOpConnHandler does nothing. It is useful for testing a pool.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a connection from the pool and passes it to f.
// The connection is released when f returns.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

// Close closes the database file. The pool may not be used anymore.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
