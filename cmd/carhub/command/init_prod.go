// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/carhub/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data.
The listings, favorites, and reviews tables are dropped (if they exist)
and created again, but no listing is inserted.
The database connection information are read from the config file.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initProd(_ *cobra.Command, _ []string) error {
	if err := initDB((*migrationuc.InitDBUseCase).InitProd); err != nil {
		return fmt.Errorf("initializing DB with prod data: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initProdCmd)
}
