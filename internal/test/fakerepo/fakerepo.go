// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakerepo provides in-memory implementations of the repo
// interfaces, so use cases and REST resources may be tested without
// a database server.
package fakerepo

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/momeni/carhub/pkg/core/cerr"
	"github.com/momeni/carhub/pkg/core/model"
	"github.com/momeni/carhub/pkg/core/repo"
)

// ErrRawSQL is returned by the Exec and Query methods of the fake
// connections since no SQL engine backs them.
var ErrRawSQL = errors.New("raw SQL is not supported by fakerepo")

// Pool is a fake repo.Pool. If Err is set, it is returned instead of
// calling the connection handlers.
type Pool struct {
	Err error
}

// Conn calls handler with a fake connection.
func (p *Pool) Conn(ctx context.Context, handler repo.ConnHandler) error {
	if p.Err != nil {
		return p.Err
	}
	return handler(ctx, conn{})
}

type conn struct{}

func (conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

func (conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	return handler(ctx, tx{})
}

func (conn) IsConn() {}

type tx struct{}

func (tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

func (tx) IsTx() {}

// Listings is an in-memory repo.Listings which keeps its listings in
// a slice. It is safe for concurrent use. If Err is set, all queries
// fail with it. The Calls field counts the executed queries by name.
type Listings struct {
	Err error

	mu       sync.Mutex
	listings []model.Listing
	Calls    map[string]int
}

// NewListings creates a Listings repository holding ls.
func NewListings(ls ...model.Listing) *Listings {
	return &Listings{listings: ls, Calls: make(map[string]int)}
}

// Conn returns a queryer which works on the in-memory listings.
func (l *Listings) Conn(repo.Conn) repo.ListingsConnQueryer {
	return listingsQueryer{l}
}

// Tx returns a queryer which works on the in-memory listings.
func (l *Listings) Tx(repo.Tx) repo.ListingsTxQueryer {
	return listingsQueryer{l}
}

type listingsQueryer struct {
	*Listings
}

func (q listingsQueryer) enter(name string) error {
	q.mu.Lock()
	q.Calls[name]++
	return q.Err
}

func (q listingsQueryer) Insert(
	_ context.Context, l *model.Listing,
) (uuid.UUID, error) {
	defer q.mu.Unlock()
	if err := q.enter("Insert"); err != nil {
		return uuid.Nil, err
	}
	c := *l
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	q.listings = append(q.listings, c)
	return c.ID, nil
}

func (q listingsQueryer) matching(f *model.Filter) []model.Listing {
	var ls []model.Listing
	for _, l := range q.listings {
		if Matches(f, &l) {
			ls = append(ls, l)
		}
	}
	slices.SortFunc(ls, func(a, b model.Listing) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(b.ID[:], a.ID[:])
	})
	return ls
}

func (q listingsQueryer) Search(
	_ context.Context, f *model.Filter,
) ([]model.Listing, error) {
	defer q.mu.Unlock()
	if err := q.enter("Search"); err != nil {
		return nil, err
	}
	ls := q.matching(f)
	off := min(f.Offset(), len(ls))
	end := min(off+f.Limit, len(ls))
	return slices.Clone(ls[off:end]), nil
}

func (q listingsQueryer) Count(
	_ context.Context, f *model.Filter,
) (int64, error) {
	defer q.mu.Unlock()
	if err := q.enter("Count"); err != nil {
		return 0, err
	}
	return int64(len(q.matching(f))), nil
}

func (q listingsQueryer) FetchByIDs(
	_ context.Context, ids []uuid.UUID,
) ([]model.Listing, error) {
	defer q.mu.Unlock()
	if err := q.enter("FetchByIDs"); err != nil {
		return nil, err
	}
	var ls []model.Listing
	for _, l := range q.listings {
		if slices.Contains(ids, l.ID) {
			ls = append(ls, l)
		}
	}
	return ls, nil
}

func (q listingsQueryer) FetchByID(
	_ context.Context, id uuid.UUID,
) (*model.Listing, error) {
	defer q.mu.Unlock()
	if err := q.enter("FetchByID"); err != nil {
		return nil, err
	}
	for _, l := range q.listings {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, cerr.NotFound(errors.New("car not found"))
}

func (q listingsQueryer) Ping(context.Context) error {
	defer q.mu.Unlock()
	return q.enter("Ping")
}

// Matches reports if the l listing satisfies the f filter, following
// the same rules as the PostgreSQL listings repository.
func Matches(f *model.Filter, l *model.Listing) bool {
	if l.Status != model.ListingStatusActive {
		return false
	}
	if f.Query != "" && !containsFold(f.Query, l) {
		return false
	}
	if !f.Price.Contains(l.Price) || !f.Year.Contains(l.Year) ||
		!f.Mileage.Contains(l.Mileage) {
		return false
	}
	switch {
	case f.FuelType != "" && f.FuelType != l.FuelType:
		return false
	case f.Transmission != "" && f.Transmission != l.Transmission:
		return false
	case f.BodyType != "" && (l.BodyType == nil || f.BodyType != *l.BodyType):
		return false
	case f.Make != "" && f.Make != l.Make:
		return false
	}
	return true
}

func containsFold(term string, l *model.Listing) bool {
	term = strings.ToLower(term)
	for _, s := range append(
		[]string{l.Make, l.Model, l.Description}, l.Features...,
	) {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}
