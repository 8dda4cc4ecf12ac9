// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/carhub/pkg/adapter/db/postgres/migration"
	"github.com/momeni/carhub/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used respectively.`,
}

// initDB connects to the configured database and creates the listings
// tables using the initFn method of an InitDBUseCase.
func initDB(
	initFn func(*migrationuc.InitDBUseCase, context.Context) error,
) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	return initFn(migrationuc.NewInitDB(p, migration.New()), ctx)
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
