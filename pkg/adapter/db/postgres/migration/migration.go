// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration creates the database tables and fills them with
// their initial rows. The tables are described by the embedded
// schema.sql file and the development suitable listings are taken from
// the embedded devdata.json file.
package migration

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/carhub/pkg/adapter/db/postgres"
	"github.com/momeni/carhub/pkg/adapter/db/postgres/listingsrp"
	"github.com/momeni/carhub/pkg/core/model"
	"github.com/momeni/carhub/pkg/core/repo"
)

//go:embed schema.sql
var schemaSQL string

//go:embed devdata.json
var devDataJSON []byte

// Repo implements the repo.Schema interface.
type Repo struct {
}

// New creates a schema management Repo.
func New() *Repo {
	return &Repo{}
}

// Tx returns an Initializer which works in the tx transaction.
// It panics if tx was not created by the postgres package.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaInitializer {
	return &Initializer{tx: tx.(*postgres.Tx)}
}

// Initializer implements the repo.SchemaInitializer interface. It drops
// and recreates the listings, favorites, and reviews tables.
type Initializer struct {
	tx *postgres.Tx
}

// InitProdSchema recreates the tables, leaving them empty.
func (si *Initializer) InitProdSchema(ctx context.Context) error {
	if _, err := si.tx.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// InitDevSchema recreates the tables and inserts the sample listings.
// Sample listings are created one minute apart, so the last one in
// the devdata.json file is the newest.
func (si *Initializer) InitDevSchema(ctx context.Context) error {
	if err := si.InitProdSchema(ctx); err != nil {
		return err
	}
	ls, err := DevListings()
	if err != nil {
		return err
	}
	base := time.Now().Add(-time.Duration(len(ls)) * time.Minute)
	for i := range ls {
		ls[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := listingsrp.Insert(ctx, si.tx, &ls[i]); err != nil {
			return fmt.Errorf(
				"inserting %s %s: %w", ls[i].Make, ls[i].Model, err,
			)
		}
	}
	return nil
}

// DevListings decodes the sample listings. Missing statuses and
// condition ratings are filled with their defaults.
func DevListings() ([]model.Listing, error) {
	var ls []model.Listing
	if err := json.Unmarshal(devDataJSON, &ls); err != nil {
		return nil, fmt.Errorf("decoding devdata.json: %w", err)
	}
	for i := range ls {
		if ls[i].Status == model.ListingStatusInvalid {
			ls[i].Status = model.ListingStatusActive
		}
		if ls[i].ConditionRating == 0 {
			ls[i].ConditionRating = model.DefaultConditionRating
		}
	}
	return ls, nil
}
