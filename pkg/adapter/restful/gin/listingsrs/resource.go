// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package listingsrs realizes the listings resource, allowing the
// listings browsing REST APIs to be accepted and delegated to the
// listings use case.
package listingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carhub/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carhub/pkg/core/usecase/listingsuc"
)

type resource struct {
	listings *listingsuc.UseCase
}

// Register instantiates a resource adapting the listings use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/cars/search
//     in order to search active listings with a filter,
//  2. GET request to /api/cars
//     in order to browse all active listings, page by page,
//  3. GET request to /api/cars/:id
//     in order to fetch one listing.
func Register(r *gin.RouterGroup, listings *listingsuc.UseCase) {
	rs := &resource{listings: listings}
	r.GET("cars/search", rs.Search)
	r.GET("cars", rs.List)
	r.GET("cars/:id", rs.Get)
}

func (rs *resource) Search(c *gin.Context) {
	f := rs.DserSearchReq(c)
	if f == nil {
		return
	}
	page, err := rs.listings.Search(c, *f)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (rs *resource) List(c *gin.Context) {
	f := rs.DserListReq(c)
	if f == nil {
		return
	}
	page, err := rs.listings.Search(c, *f)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (rs *resource) Get(c *gin.Context) {
	id := rs.DserGetReq(c)
	if id == nil {
		return
	}
	l, err := rs.listings.Get(c, *id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}
