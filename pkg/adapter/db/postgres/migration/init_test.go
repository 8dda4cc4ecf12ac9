// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migration_test

import (
	"context"
	"testing"
	"time"

	"github.com/momeni/carhub/internal/test/dbcontainer"
	"github.com/momeni/carhub/internal/test/schema"
	"github.com/momeni/carhub/pkg/adapter/db/postgres/migration"
	"github.com/momeni/carhub/pkg/core/repo"
	"github.com/momeni/carhub/pkg/core/usecase/migrationuc"
	"github.com/stretchr/testify/require"
)

func TestInitDevAndProd(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	iduc := migrationuc.NewInitDB(pool, migration.New())
	verify := func(prod bool) {
		err := pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
			v := schema.NewVerifier(c)
			v.VerifySchema(ctx, t)
			if prod {
				v.VerifyProdData(ctx, t)
			} else {
				v.VerifyDevData(ctx, t)
			}
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, iduc.InitDev(ctx), "initializing dev schema")
	verify(false)
	require.NoError(t, iduc.InitDev(ctx), "dev initialization is repeatable")
	verify(false)
	require.NoError(t, iduc.InitProd(ctx), "initializing prod schema")
	verify(true)
}
