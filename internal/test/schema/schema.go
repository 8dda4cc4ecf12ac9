// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema provides a database schema verifier which can be
// used for testing purposes. It checks the tables which are created by
// the migration package and, after a direct database initialization,
// the presence of their expected initial rows.
package schema

import (
	"context"
	"testing"

	"github.com/momeni/carhub/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tables lists the expected tables and their columns.
var Tables = map[string][]string{
	"listings": {
		"id", "user_id", "make", "model", "year", "price", "mileage",
		"fuel_type", "transmission", "body_type", "color",
		"engine_size", "doors", "seats", "condition_rating",
		"description", "image", "images", "features", "status",
		"views", "created_at", "updated_at",
	},
	"favorites": {"id", "user_id", "car_id", "created_at"},
	"reviews": {
		"id", "reviewer_id", "reviewed_user_id", "car_id", "rating",
		"comment", "helpful_votes", "created_at",
	},
}

// DevListingsCount is the number of sample listings which are inserted
// by a development suitable initialization.
const DevListingsCount = 12

// Verifier verifies the database schema using its wrapped connection.
type Verifier struct {
	c repo.Conn // database connection which is used for testing
}

// NewVerifier instantiates a Verifier which wraps the c connection.
func NewVerifier(c repo.Conn) *Verifier {
	return &Verifier{c}
}

// VerifySchema checks that all expected tables and columns exist.
// Extra columns are acceptable. Failures are reported using t.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	for table, cols := range Tables {
		actual := v.strings(ctx, t,
			`SELECT column_name FROM information_schema.columns
WHERE table_schema=current_schema() AND table_name=$1`, table,
		)
		assert.Subset(t, actual, cols, "columns of %q table", table)
	}
}

// VerifyDevData checks that the sample listings were inserted and all
// of them are active.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	assert.Equal(t,
		[]string{"active"},
		v.strings(ctx, t, "SELECT DISTINCT status FROM listings"),
	)
	makes := v.strings(ctx, t, "SELECT make FROM listings")
	assert.Len(t, makes, DevListingsCount)
	assert.Contains(t, makes, "Toyota")
}

// VerifyProdData checks that no listings were inserted.
func (v *Verifier) VerifyProdData(ctx context.Context, t *testing.T) {
	assert.Empty(t, v.strings(ctx, t, "SELECT make FROM listings"))
}

func (v *Verifier) strings(
	ctx context.Context, t *testing.T, sql string, args ...any,
) []string {
	rows, err := v.c.Query(ctx, sql, args...)
	require.NoError(t, err, "querying %q", sql)
	defer rows.Close()
	var result []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		result = append(result, s)
	}
	require.NoError(t, rows.Err())
	return result
}
