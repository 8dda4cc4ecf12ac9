// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package listingsuc contains the listings UseCase which supports the
// read-only listings use cases:
//  1. Searching active listings with a filter, page by page,
//  2. Fetching a single listing by its identifier.
package listingsuc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/carhub/pkg/core/cerr"
	"github.com/momeni/carhub/pkg/core/log"
	"github.com/momeni/carhub/pkg/core/model"
	"github.com/momeni/carhub/pkg/core/repo"
)

// Page size defaults which are used when no Option overrides them.
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// UseCase represents the listings use case. It holds a database
// connection pool, the listings repository instance (to be guided with
// the DB pool), and the pagination settings.
type UseCase struct {
	pool       repo.Pool
	listingsrp repo.Listings

	defaultPageSize int
	maxPageSize     int
}

// New instantiates a listings use case.
// Required parameters are passed individually while optional ones
// are passed as a series of functional options.
func New(p repo.Pool, l repo.Listings, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, listingsrp: l}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.maxPageSize == 0 {
		uc.maxPageSize = max(MaxPageSize, uc.defaultPageSize)
	}
	if uc.defaultPageSize == 0 {
		uc.defaultPageSize = min(DefaultPageSize, uc.maxPageSize)
	}
	if uc.defaultPageSize > uc.maxPageSize {
		return nil, fmt.Errorf(
			"default page size (%d) exceeds the max page size (%d)",
			uc.defaultPageSize, uc.maxPageSize,
		)
	}
	return uc, nil
}

// Search finds the active listings which satisfy f and returns one
// page of them, alongside the pagination metadata. Missing page and
// limit values are replaced by their defaults and large limits are
// clamped to the max page size. The total count and the page rows are
// read with two independent queries on the same connection, so they
// may disagree if listings are modified concurrently.
// Asking for a page after the last one is not an error and yields
// an empty list with the real total count.
func (uc *UseCase) Search(
	ctx context.Context, f model.Filter,
) (*model.Page, error) {
	f.Normalize(uc.defaultPageSize, uc.maxPageSize)
	var (
		total int64
		ls    []model.Listing
	)
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (
		err error,
	) {
		q := uc.listingsrp.Conn(c)
		total, err = q.Count(ctx, &f)
		if err != nil {
			return fmt.Errorf("counting listings: %w", err)
		}
		if f.PastEnd(total) {
			return nil
		}
		ls, err = q.Search(ctx, &f)
		if err != nil {
			return fmt.Errorf("fetching listings page: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error(
			ctx, "searching listings failed",
			log.Valuer("filter", &f), log.Err("err", err),
		)
		return nil, cerr.OrDataStore(err)
	}
	if ls == nil {
		ls = []model.Listing{}
	}
	return &model.Page{
		Listings:   ls,
		Pagination: model.NewPagination(f.Page, f.Limit, total),
	}, nil
}

// Get fetches the listing with the given identifier, whatever its
// status is. A cerr.NotFound error is returned if it does not exist.
func (uc *UseCase) Get(
	ctx context.Context, id uuid.UUID,
) (l *model.Listing, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		l, err = uc.listingsrp.Conn(c).FetchByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, cerr.OrDataStore(err)
	}
	return l, nil
}

// Ping checks that the listings data store is reachable.
func (uc *UseCase) Ping(ctx context.Context) error {
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.listingsrp.Conn(c).Ping(ctx)
	})
	return cerr.OrDataStore(err)
}
