// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import "database/sql"

// rowsAdapter adapts the *sql.Rows, as returned by GORM, to the
// repo.Rows interface.
type rowsAdapter struct {
	*sql.Rows
}

func (ra rowsAdapter) Close() {
	// returned error may be checked by calling the Err() method
	_ = ra.Rows.Close()
}
