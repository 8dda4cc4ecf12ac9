// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is a function which runs in a transaction. Returning a nil
// error commits the transaction, otherwise it is rolled back.
type TxHandler func(context.Context, Tx) error

// Conn represents one database connection. Consecutive queries which
// are executed on a Conn out of any transaction are independent reads.
type Conn interface {
	Queryer

	// Tx begins a transaction and passes it to handler.
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}
