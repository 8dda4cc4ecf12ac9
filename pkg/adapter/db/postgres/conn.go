// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/carhub/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn represents one pooled database connection. Statements which are
// executed on a Conn (and not in a Tx) are committed individually.
type Conn struct {
	*gorm.DB
}

// Tx begins a transaction and passes it to f. The transaction is
// committed if f returns nil, and is rolled back if f returns an error
// or panics. Panics are converted to errors.
func (c *Conn) Tx(ctx context.Context, f repo.TxHandler) (err error) {
	tx := c.DB.WithContext(ctx).Begin()
	if err = tx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = tx.Rollback().Error
			if err == nil {
				err = fmt.Errorf("panicked: %v", r)
				return
			}
			err = fmt.Errorf("panicked: %v, rollback: %w", r, err)
			return
		}
		if err != nil {
			if err2 := tx.Rollback().Error; err2 != nil {
				err = fmt.Errorf("handler: %w, rollback: %w", err, err2)
				return
			}
			err = fmt.Errorf("handler: %w", err)
			return
		}
		err = tx.Commit().Error
		if err != nil {
			err = fmt.Errorf("commit: %w", err)
		}
	}()
	tt := &Tx{DB: tx}
	return f(ctx, tt)
}

// Exec runs sql with args and returns the number of affected rows.
func (c *Conn) Exec(
	ctx context.Context, sql string, args ...any,
) (int64, error) {
	tt := c.DB.WithContext(ctx).Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}

// Query runs sql with args and returns its result set.
func (c *Conn) Query(
	ctx context.Context, sql string, args ...any,
) (repo.Rows, error) {
	rows, err := c.DB.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	return rowsAdapter{rows}, nil
}

// Ping verifies that the connection is still alive by running a no-op
// statement on it.
func (c *Conn) Ping(ctx context.Context) error {
	return c.DB.WithContext(ctx).Exec("SELECT 1").Error
}

// IsConn method prevents a non-Conn object (such as a Tx) to
// mistakenly implement the Conn interface.
func (c *Conn) IsConn() {
}

// GORM returns the embedded *gorm.DB instance, configuring it
// to operate on the given ctx context (in a gorm.Session).
func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}
