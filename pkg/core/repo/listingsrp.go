// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/carhub/pkg/core/model"
)

// ListingsConnQueryer lists the listings queries which may be executed
// on a connection, out of any explicit transaction.
type ListingsConnQueryer interface {
	ListingsQueryer
}

// ListingsTxQueryer lists the listings queries which must be executed
// in a transaction. Inserting listings is only expected from seeders
// and tests, so it is exposed for transactions only.
type ListingsTxQueryer interface {
	ListingsQueryer

	// Insert stores the l listing and returns its generated identifier.
	// If l.ID is not the zero UUID, it is used as the identifier.
	Insert(ctx context.Context, l *model.Listing) (uuid.UUID, error)
}

// ListingsQueryer contains the read-only listings queries.
type ListingsQueryer interface {
	// Search finds the active listings which satisfy f and returns
	// the requested page, ordered by creation time (newest first).
	// The f filter must be normalized beforehand.
	Search(ctx context.Context, f *model.Filter) ([]model.Listing, error)

	// Count returns the number of active listings which satisfy f,
	// ignoring its page and limit fields.
	Count(ctx context.Context, f *model.Filter) (int64, error)

	// FetchByIDs fetches the listings with the given identifiers,
	// whatever their status is. Unknown identifiers are skipped and
	// no particular order is guaranteed for the returned listings.
	FetchByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Listing, error)

	// FetchByID fetches one listing. A cerr.NotFound error is returned
	// if no such listing exists.
	FetchByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
}

// Listings represents the listings repository. It provides the queries
// over a given connection or transaction.
type Listings interface {
	Conn(Conn) ListingsConnQueryer
	Tx(Tx) ListingsTxQueryer
}
