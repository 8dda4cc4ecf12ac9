// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package comparisonrs realizes the comparison resource, allowing
// a few listings to be compared side by side by the compare use case.
package comparisonrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/carhub/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carhub/pkg/core/usecase/compareuc"
)

type resource struct {
	compare *compareuc.UseCase
}

// Register instantiates a resource adapting the compare use case
// instance with the POST request to /api/cars/compare whose json body
// lists the identifiers of the compared listings as carIds.
func Register(r *gin.RouterGroup, compare *compareuc.UseCase) {
	rs := &resource{compare: compare}
	r.POST("cars/compare", rs.Compare)
}

// rawCompareReq leaves the number of identifiers unchecked, so the
// use case reports it with its own message.
type rawCompareReq struct {
	CarIDs []string `json:"carIds" binding:"omitempty,dive,uuid"`
}

func (rs *resource) Compare(c *gin.Context) {
	ids := rs.DserCompareReq(c)
	if ids == nil {
		return
	}
	cmp, err := rs.compare.Compare(c, ids)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

func (rs *resource) DserCompareReq(c *gin.Context) []uuid.UUID {
	req := &rawCompareReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	var errs map[string][]string
	ids := make([]uuid.UUID, 0, len(req.CarIDs))
	for _, s := range req.CarIDs {
		id, err := uuid.Parse(s)
		if serdser.Assert(&errs, err == nil, "carIds", s+" is not UUID.") {
			ids = append(ids, id)
		}
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return ids
}
