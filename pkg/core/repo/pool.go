// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the repository interfaces which are expected
// by the use cases. Implementations live in the db adapters, so use
// cases may be tested with in-memory fakes.
package repo

import "context"

// ConnHandler is a function which uses a pooled connection. The
// connection is released as soon as the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool.
type Pool interface {
	// Conn acquires a connection and passes it to handler. The
	// handler error is returned as is.
	Conn(ctx context.Context, handler ConnHandler) error
}
