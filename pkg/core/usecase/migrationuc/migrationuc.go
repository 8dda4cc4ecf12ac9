// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migrationuc provides the database initialization use case.
// The InitDBUseCase (re)creates the database tables and fills them with
// the development or production suitable data. All statements run in
// one transaction, so a failed initialization leaves the database as
// it was.
package migrationuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/carhub/pkg/core/cerr"
	"github.com/momeni/carhub/pkg/core/log"
	"github.com/momeni/carhub/pkg/core/repo"
)

// InitDBUseCase represents the database initialization use case. It may
// be used to initialize database with development or production
// suitable data as asked by the InitDev and InitProd methods.
type InitDBUseCase struct {
	pool       repo.Pool
	schemaRepo repo.Schema
}

// NewInitDB creates an InitDBUseCase instance which connects to the
// target database using p and manages its tables using s.
func NewInitDB(p repo.Pool, s repo.Schema) *InitDBUseCase {
	return &InitDBUseCase{pool: p, schemaRepo: s}
}

// InitProd drops the listings related tables (if they exist) and
// creates them again, leaving them empty.
func (iduc *InitDBUseCase) InitProd(ctx context.Context) error {
	return iduc.initDB(
		ctx, "prod",
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitProdSchema(ctx)
		},
	)
}

// InitDev drops the listings related tables (if they exist), creates
// them again, and fills them with sample listings.
func (iduc *InitDBUseCase) InitDev(ctx context.Context) error {
	return iduc.initDB(
		ctx, "dev",
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitDevSchema(ctx)
		},
	)
}

func (iduc *InitDBUseCase) initDB(
	ctx context.Context, env string,
	dbi func(ctx context.Context, si repo.SchemaInitializer) error,
) error {
	err := iduc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return dbi(ctx, iduc.schemaRepo.Tx(tx))
		})
	})
	if err != nil {
		return cerr.OrDataStore(
			fmt.Errorf("initializing %s schema: %w", env, err),
		)
	}
	log.Info(ctx, "database is initialized", slog.String("env", env))
	return nil
}
