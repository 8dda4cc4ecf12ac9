// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the carhub
// web project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database initialization actions,
// namely init-dev and init-prod, which create the listings tables
// with or without the sample listings.
//
//	./carhub [-c /path/of/main/config.yaml]           # start web server
//	./carhub db init-dev [-c /path/of/main/config.yaml]
//	./carhub db init-prod [-c /path/of/main/config.yaml]
//
// A .env file in the working directory, if present, is loaded before
// everything else, so it may set CONFIG_FILE or the CARHUB_* variables.
package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/momeni/carhub/pkg/adapter/config"
	"github.com/momeni/carhub/pkg/adapter/restful/gin"
	"github.com/momeni/carhub/pkg/adapter/restful/gin/routes"
	"github.com/momeni/carhub/pkg/core/log"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "carhub",
	Short: "A used-car marketplace listings web service",
	Long: `A used-car marketplace listings web service which allows
active listings to be searched by a free-text term, numeric ranges
of price, year, and mileage, and exact categorical attributes, page
by page. It also allows two to four listings to be compared side by
side, computing their price-per-mile and age and the extrema of their
numeric fields. Listings are kept in a PostgreSQL database which may
be initialized by the db sub-commands.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
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
	var e *gin.Engine = c.Gin.NewEngine(slog.Default())
	if err = routes.Register(e, p, c.Usecases); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	log.Info(ctx, "starting web server", slog.String("addr", c.Gin.Address))
	if err = e.Run(c.Gin.Address); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// loadConfig loads the cfgPath config file and configures the default
// slog logger based on its logging settings.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err = c.Logging.Configure(os.Stderr); err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	return c, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv, fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// loadDotEnv loads the .env file without overriding the variables
// which are set already. A missing .env file is ignored.
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "loading .env file:", err)
	}
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
