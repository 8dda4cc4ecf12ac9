// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres implements the repo.Pool, repo.Conn, and repo.Tx
// interfaces using the GORM framework over the pgx PostgreSQL driver.
// Repository packages, such as listingsrp, may use the embedded
// *gorm.DB instances through the GORM method of Conn and Tx.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/carhub/pkg/core/model"
)

// These constants represent the major, minor, and patch components of
// the current database schema semantic version. Tables which are
// created by the migration package follow this version.
const (
	Major = 1 // latest supported schema major version
	Minor = 0 // latest schema minor version in Major series
	Patch = 0 // latest schema patch version in Minor series
)

// Version is the latest supported database schema semantic version.
var Version = model.SemVer{Major, Minor, Patch}

// SQLSTATE codes which are mapped to specific errors by repositories.
// For the complete list, see
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

// HasCode reports if err wraps a PostgreSQL error with the given
// SQLSTATE code.
func HasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
