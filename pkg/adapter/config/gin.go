// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"log/slog"

	"github.com/momeni/carhub/pkg/adapter/config/settings"
	"github.com/momeni/carhub/pkg/adapter/restful/gin"
)

// DefaultAddress is the listening address of the web server when
// no gin.address setting is given.
const DefaultAddress = ":8080"

// Gin contains the Gin-Gonic engine settings.
type Gin struct {
	Logger   *bool  // Whether to log requests with the slog logger
	Recovery *bool  // Whether to register the gin.Recovery() middleware
	Address  string `yaml:",omitempty"` // host:port to listen on
}

// NewEngine instantiates a gin.Engine with the configured middlewares.
// Requests are logged by the logger argument.
func (g Gin) NewEngine(logger *slog.Logger) *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger(logger))
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// ValidateAndNormalize fills the missing settings. Missing boolean
// flags are taken as false.
func (g *Gin) ValidateAndNormalize() error {
	settings.Default(&g.Logger, false)
	settings.Default(&g.Recovery, false)
	if g.Address == "" {
		g.Address = DefaultAddress
	}
	return nil
}
