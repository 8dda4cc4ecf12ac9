// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/carhub/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is the type constraint of the generic query functions which
// may be executed both on a connection and in a transaction.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	// GORM returns the embedded *gorm.DB bound to ctx.
	GORM(ctx context.Context) *gorm.DB
}
