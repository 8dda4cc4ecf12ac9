// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx represents a database transaction. It may not be used
// concurrently. Listings are only written in transactions (seeding the
// development data and preparing test fixtures), while searches and
// comparisons run directly on a Conn. By default, a READ-COMMITTED
// transaction is expected from the PostgreSQL server.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
