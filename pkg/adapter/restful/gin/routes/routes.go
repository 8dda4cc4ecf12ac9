// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carhub/pkg/adapter/config"
	"github.com/momeni/carhub/pkg/adapter/db/postgres/listingsrp"
	"github.com/momeni/carhub/pkg/adapter/restful/gin/comparisonrs"
	"github.com/momeni/carhub/pkg/adapter/restful/gin/healthrs"
	"github.com/momeni/carhub/pkg/adapter/restful/gin/listingsrs"
	"github.com/momeni/carhub/pkg/core/repo"
)

// Register instantiates relevant repositories and use cases based on
// the c use cases settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// on demand. These connections will be passed to the repositories
// later in order to run relevant queries on them. Each use case package
// is named like listingsuc and each repository package is named like
// listingsrp. Register instantiates a series of "resource" structs,
// from packages which are named like listingsrs, in order to adapt
// the use cases interfaces with the REST APIs. These resources are
// registered as request handlers using the e gin-gonic engine instance.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool, c config.Usecases) error {
	listingsRepo := listingsrp.New()

	listingsUseCase, err := c.Listings.NewUseCase(p, listingsRepo)
	if err != nil {
		return fmt.Errorf("creating listings use case: %w", err)
	}
	compareUseCase, err := c.NewCompareUseCase(p, listingsRepo)
	if err != nil {
		return fmt.Errorf("creating compare use case: %w", err)
	}
	r := e.Group("/api")
	listingsrs.Register(r, listingsUseCase)
	comparisonrs.Register(r, compareUseCase)
	healthrs.Register(r, listingsUseCase)
	return nil
}
