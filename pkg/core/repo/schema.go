// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaInitializer creates the tables, indices, and initial rows of
// an empty database. The destination transaction is known since the
// SchemaInitializer instantiation time.
type SchemaInitializer interface {
	// InitDevSchema creates tables and fills them with sample rows
	// which are suitable for development and manual testing.
	InitDevSchema(ctx context.Context) error

	// InitProdSchema creates tables and leaves them empty.
	InitProdSchema(ctx context.Context) error
}

// Schema represents the schema management repository.
type Schema interface {
	// Tx returns a SchemaInitializer which works in the tx transaction.
	Tx(tx Tx) SchemaInitializer
}
