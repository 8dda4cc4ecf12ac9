// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/carhub/pkg/core/log"
	"github.com/momeni/carhub/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSlowThreshold is the minimum duration of queries which are
// logged as slow queries, unless WithSlowThreshold overrides it.
const DefaultSlowThreshold = 200 * time.Millisecond

// Pool represents a database connection pool. Its zero value is not
// usable and it must be created by the NewPool function.
type Pool struct {
	*gorm.DB
}

type poolConfig struct {
	slowThreshold time.Duration
}

// Option is a functional option for the NewPool function.
type Option func(pc *poolConfig) error

// WithSlowThreshold configures the minimum duration of queries which
// should be logged as slow queries.
func WithSlowThreshold(d time.Duration) Option {
	return func(pc *poolConfig) error {
		if d <= 0 {
			return fmt.Errorf("slow threshold (%v) is not positive", d)
		}
		pc.slowThreshold = d
		return nil
	}
}

// NewPool connects to the url database (which may be a URL or
// a key=value DSN) and tests the connection before returning the pool.
// GORM logs (errors and slow queries) are forwarded to the default
// slog logger.
func NewPool(ctx context.Context, url string, opts ...Option) (*Pool, error) {
	pc := &poolConfig{slowThreshold: DefaultSlowThreshold}
	for _, opt := range opts {
		if err := opt(pc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.New(slogWriter{}, logger.Config{
			SlowThreshold:             pc.slowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
			// Set to false in order to log with replaced vars
			ParameterizedQueries: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.(*Conn).Ping(ctx)
	})
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("testing connection: %w", err), pool.Close(),
		)
	}
	return pool, nil
}

// slogWriter implements the logger.Writer interface of GORM, so its
// messages are logged as warnings by the default slog logger.
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	log.Warn(
		context.Background(), "gorm",
		slog.String("msg", fmt.Sprintf(format, args...)),
	)
}

// Conn acquires a connection from the pool and passes it to f.
// The connection is released when f returns.
func (p *Pool) Conn(ctx context.Context, f repo.ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

// Close closes all connections of the pool.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
