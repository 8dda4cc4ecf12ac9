// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgpassfile"
	"github.com/momeni/carhub/pkg/adapter/config/settings"
	"github.com/momeni/carhub/pkg/adapter/db/postgres"
)

// PassFileName is the name of the pgpass formatted file which is kept
// in the Database.PassDir directory.
const PassFileName = ".pgpass"

// Database contains the PostgreSQL connection settings. The password
// is not kept in the config file. Instead, it is looked up in the
// PassFileName file of the PassDir directory whose lines follow the
// hostname:port:database:username:password format.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like carhub
	User    string // role name for connecting to the database
	PassDir string `yaml:"pass-dir"` // path of the passwords dir

	// SlowQueryThreshold is the minimum duration of queries which are
	// logged as slow queries.
	SlowQueryThreshold *settings.Duration `yaml:"slow-query-threshold,omitempty"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in d.
func (d Database) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	path := filepath.Join(d.PassDir, PassFileName)
	u, err := d.ConnectionURL(path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	opts := []postgres.Option{}
	if t := d.SlowQueryThreshold; t != nil {
		opts = append(opts, postgres.WithSlowThreshold(time.Duration(*t)))
	}
	p, err := postgres.NewPool(ctx, u, opts...)
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s: %w", d.Host, d.Port, d.Name, err,
		)
	}
	return p, nil
}

// ConnectionURL finds the password of d.User in the path pgpass file
// and returns a URL which contains all connection information.
// The * wildcard is accepted in the first four fields of the lines,
// and colons or backslashes may be escaped by a backslash.
func (d Database) ConnectionURL(path string) (string, error) {
	pf, err := pgpassfile.ReadPassfile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	pass := pf.FindPassword(d.Host, strconv.Itoa(d.Port), d.Name, d.User)
	if pass == "" {
		return "", errors.New("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ValidateAndNormalize checks the mandatory connection settings and
// fills the slow query threshold by its default value.
func (d *Database) ValidateAndNormalize() error {
	switch {
	case d.Host == "":
		return errors.New("host is empty")
	case d.Port <= 0 || d.Port > 65535:
		return fmt.Errorf("port %d is out of range", d.Port)
	case d.Name == "":
		return errors.New("database name is empty")
	case d.User == "":
		return errors.New("user is empty")
	case d.PassDir == "":
		return errors.New("pass-dir is empty")
	}
	settings.Default(
		&d.SlowQueryThreshold,
		settings.Duration(postgres.DefaultSlowThreshold),
	)
	if *d.SlowQueryThreshold <= 0 {
		return fmt.Errorf(
			"slow-query-threshold (%v) is not positive",
			time.Duration(*d.SlowQueryThreshold),
		)
	}
	return nil
}
