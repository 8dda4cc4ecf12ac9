// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package healthrs realizes the health resource which reports if the
// listings data store is reachable.
package healthrs

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carhub/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carhub/pkg/core/log"
)

// Pinger checks the data store availability.
// The listingsuc.UseCase implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type resource struct {
	pinger Pinger
}

// Register adds the GET request to /api/health which responds with
// {"status": "healthy", "timestamp": "..."} or 503 if p fails.
func Register(r *gin.RouterGroup, p Pinger) {
	rs := &resource{pinger: p}
	r.GET("health", rs.Health)
}

func (rs *resource) Health(c *gin.Context) {
	if err := rs.pinger.Ping(c); err != nil {
		log.Warn(c, "health check failed", log.Err("err", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"detail": serdser.UnavailableDetail,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
