// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package listingsrp implements the repo.Listings interface using the
// GORM framework over a PostgreSQL listings table. Each query is
// implemented once as a generic function which may run on a
// *postgres.Conn or a *postgres.Tx, and the connQueryer and txQueryer
// types bind them to their respective repo interfaces.
package listingsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/carhub/pkg/adapter/db/postgres"
	"github.com/momeni/carhub/pkg/core/model"
	"github.com/momeni/carhub/pkg/core/repo"
)

// Repo is the PostgreSQL listings repository. It is stateless and may
// be shared by all use cases.
type Repo struct {
}

// New creates a listings Repo.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn unwraps c as a *postgres.Conn and returns a queryer on it.
// It panics if c was not created by the postgres package.
func (listings *Repo) Conn(c repo.Conn) repo.ListingsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Search(
	ctx context.Context, f *model.Filter,
) ([]model.Listing, error) {
	return Search(ctx, cq.Conn, f)
}

func (cq connQueryer) Count(
	ctx context.Context, f *model.Filter,
) (int64, error) {
	return Count(ctx, cq.Conn, f)
}

func (cq connQueryer) FetchByIDs(
	ctx context.Context, ids []uuid.UUID,
) ([]model.Listing, error) {
	return FetchByIDs(ctx, cq.Conn, ids)
}

func (cq connQueryer) FetchByID(
	ctx context.Context, id uuid.UUID,
) (*model.Listing, error) {
	return FetchByID(ctx, cq.Conn, id)
}

func (cq connQueryer) Ping(ctx context.Context) error {
	return Ping(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps tx as a *postgres.Tx and returns a queryer on it.
// It panics if tx was not created by the postgres package.
func (listings *Repo) Tx(tx repo.Tx) repo.ListingsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Search(
	ctx context.Context, f *model.Filter,
) ([]model.Listing, error) {
	return Search(ctx, tq.Tx, f)
}

func (tq txQueryer) Count(
	ctx context.Context, f *model.Filter,
) (int64, error) {
	return Count(ctx, tq.Tx, f)
}

func (tq txQueryer) FetchByIDs(
	ctx context.Context, ids []uuid.UUID,
) ([]model.Listing, error) {
	return FetchByIDs(ctx, tq.Tx, ids)
}

func (tq txQueryer) FetchByID(
	ctx context.Context, id uuid.UUID,
) (*model.Listing, error) {
	return FetchByID(ctx, tq.Tx, id)
}

func (tq txQueryer) Ping(ctx context.Context) error {
	return Ping(ctx, tq.Tx)
}

func (tq txQueryer) Insert(
	ctx context.Context, l *model.Listing,
) (uuid.UUID, error) {
	return Insert(ctx, tq.Tx, l)
}
