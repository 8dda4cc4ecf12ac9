// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package compareuc contains the comparison UseCase which places two to
// four listings side by side, computes their derived fields, and
// summarizes their extrema.
package compareuc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carhub/pkg/core/cerr"
	"github.com/momeni/carhub/pkg/core/log"
	"github.com/momeni/carhub/pkg/core/model"
	"github.com/momeni/carhub/pkg/core/repo"
)

// UseCase represents the comparison use case.
type UseCase struct {
	pool       repo.Pool
	listingsrp repo.Listings

	now func() time.Time
}

// New instantiates a comparison use case.
func New(p repo.Pool, l repo.Listings, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, listingsrp: l}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Compare fetches the listings which are identified by ids and returns
// them in the same order, each augmented with its price per mile and
// age, alongside a summary of their price, mileage, and year extrema.
//
// The number of ids must be in [model.MinComparisonSize,
// model.MaxComparisonSize] and no id may be repeated, otherwise
// a cerr.BadRequest error wrapping model.ComparisonSizeError or
// model.DuplicateListingError is returned. If any id is unknown,
// a cerr.NotFound error wrapping model.MissingListingsError is
// returned which names all unknown ids, and no listing is returned.
// Listings are compared whatever their status is.
func (uc *UseCase) Compare(
	ctx context.Context, ids []uuid.UUID,
) (*model.Comparison, error) {
	if err := validateIDs(ids); err != nil {
		return nil, cerr.BadRequest(err)
	}
	var ls []model.Listing
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (
		err error,
	) {
		ls, err = uc.listingsrp.Conn(c).FetchByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, cerr.OrDataStore(fmt.Errorf("fetching listings: %w", err))
	}
	byID := make(map[uuid.UUID]model.Listing, len(ls))
	for _, l := range ls {
		byID[l.ID] = l
	}
	ordered := make([]model.Listing, 0, len(ids))
	var missing model.MissingListingsError
	for _, id := range ids {
		l, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		ordered = append(ordered, l)
	}
	if len(missing) > 0 {
		log.Info(
			ctx, "comparison of unknown listings",
			log.UUIDs("missing", missing),
		)
		return nil, cerr.NotFound(missing)
	}
	year := uc.now().Year()
	res := &model.Comparison{
		Listings: make([]model.ComparedListing, len(ordered)),
		Summary:  model.Summarize(ordered),
	}
	for i, l := range ordered {
		res.Listings[i] = l.Compared(year)
	}
	return res, nil
}

func validateIDs(ids []uuid.UUID) error {
	n := len(ids)
	if n < model.MinComparisonSize || n > model.MaxComparisonSize {
		return model.ComparisonSizeError(n)
	}
	seen := make(map[uuid.UUID]struct{}, n)
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return model.DuplicateListingError(id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
