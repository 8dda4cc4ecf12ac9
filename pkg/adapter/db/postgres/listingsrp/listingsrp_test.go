// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package listingsrp_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carhub/internal/test/dbcontainer"
	"github.com/momeni/carhub/internal/test/fakerepo"
	"github.com/momeni/carhub/pkg/adapter/db/postgres"
	"github.com/momeni/carhub/pkg/adapter/db/postgres/listingsrp"
	"github.com/momeni/carhub/pkg/core/cerr"
	"github.com/momeni/carhub/pkg/core/model"
	"github.com/momeni/carhub/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type ListingsRepoTestSuite struct {
	suite.Suite

	Ctx      context.Context
	Pool     *postgres.Pool
	Repo     *listingsrp.Repo
	Listings []model.Listing
}

func TestListingsRepoTestSuite(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.NewInitialized(
		ctx, 60*time.Second, false, t,
	)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	lrts := &ListingsRepoTestSuite{
		Ctx:  ctx,
		Pool: pool,
		Repo: listingsrp.New(),
	}
	suite.Run(t, lrts)
}

func (lrts *ListingsRepoTestSuite) SetupSuite() {
	ls := fakerepo.Showroom()
	percent := fakerepo.NewListing("Fiat", "500", 2019, 9000, 61000)
	percent.Description = "100% original paint"
	percent.CreatedAt = fakerepo.Epoch.Add(-time.Hour)
	ls = append(ls, percent)
	err := lrts.Pool.Conn(lrts.Ctx, func(
		ctx context.Context, c repo.Conn,
	) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := lrts.Repo.Tx(tx)
			for i := range ls {
				id, err := q.Insert(ctx, &ls[i])
				if err != nil {
					return err
				}
				lrts.Require().Equal(ls[i].ID, id)
			}
			return nil
		})
	})
	lrts.Require().NoError(err, "inserting fixtures")
	lrts.Listings = ls
}

func (lrts *ListingsRepoTestSuite) conn(
	f func(ctx context.Context, q repo.ListingsConnQueryer),
) {
	err := lrts.Pool.Conn(lrts.Ctx, func(
		ctx context.Context, c repo.Conn,
	) error {
		f(ctx, lrts.Repo.Conn(c))
		return nil
	})
	lrts.Require().NoError(err)
}

func (lrts *ListingsRepoTestSuite) search(f model.Filter) []uuid.UUID {
	f.Normalize(12, 100)
	var ids []uuid.UUID
	lrts.conn(func(ctx context.Context, q repo.ListingsConnQueryer) {
		ls, err := q.Search(ctx, &f)
		lrts.Require().NoError(err)
		n, err := q.Count(ctx, &f)
		lrts.Require().NoError(err)
		lrts.GreaterOrEqual(n, int64(len(ls)))
		ids = make([]uuid.UUID, len(ls))
		for i, l := range ls {
			ids[i] = l.ID
		}
	})
	return ids
}

func (lrts *ListingsRepoTestSuite) ids(indices ...int) []uuid.UUID {
	r := make([]uuid.UUID, len(indices))
	for i, idx := range indices {
		r[i] = lrts.Listings[idx].ID
	}
	return r
}

func (lrts *ListingsRepoTestSuite) TestSearchOrderAndStatus() {
	lrts.Equal(lrts.ids(3, 2, 1, 0, 5), lrts.search(model.Filter{}))
}

func (lrts *ListingsRepoTestSuite) TestSearchMakeAndPrice() {
	minP, maxP := 20000.0, 30000.0
	lrts.Equal(lrts.ids(0), lrts.search(model.Filter{
		Make:  "Toyota",
		Price: model.Bounds[float64]{Min: &minP, Max: &maxP},
	}))
}

func (lrts *ListingsRepoTestSuite) TestSearchFreeText() {
	lrts.Equal(lrts.ids(0), lrts.search(model.Filter{Query: "backup CAM"}))
	lrts.Equal(lrts.ids(3), lrts.search(model.Filter{Query: "autopilot"}))
	lrts.Equal(lrts.ids(5), lrts.search(model.Filter{Query: "%"}),
		"LIKE wildcards must be matched literally",
	)
	lrts.Empty(lrts.search(model.Filter{Query: "_"}))
}

func (lrts *ListingsRepoTestSuite) TestSearchMatchesFake() {
	y, m := 2022, 20000
	filters := []model.Filter{
		{Year: model.Bounds[int]{Min: &y}},
		{Mileage: model.Bounds[int]{Max: &m}, BodyType: "Sedan"},
		{Transmission: "Manual"},
		{FuelType: "Electric", Query: "model"},
		{Query: "o", Limit: 2, Page: 2},
	}
	fake := fakerepo.NewListings(lrts.Listings...)
	for _, f := range filters {
		f.Normalize(12, 100)
		expected, err := fake.Conn(nil).Search(lrts.Ctx, &f)
		lrts.Require().NoError(err)
		ids := make([]uuid.UUID, len(expected))
		for i, l := range expected {
			ids[i] = l.ID
		}
		lrts.Equal(ids, lrts.search(f), "filter: %+v", f)
	}
}

func (lrts *ListingsRepoTestSuite) TestFetch() {
	lrts.conn(func(ctx context.Context, q repo.ListingsConnQueryer) {
		unknown := uuid.New()
		ls, err := q.FetchByIDs(ctx, append(lrts.ids(4, 0), unknown))
		lrts.Require().NoError(err)
		lrts.Len(ls, 2, "inactive listings are fetched too")

		l, err := q.FetchByID(ctx, lrts.Listings[0].ID)
		lrts.Require().NoError(err)
		lrts.Equal("Camry", l.Model)
		lrts.Equal([]string{"Backup Camera", "Bluetooth"}, l.Features)
		lrts.Equal([]string{}, l.Images)
		lrts.Equal(28500.0, l.Price)
		lrts.Equal(model.ListingStatusActive, l.Status)
		lrts.True(fakerepo.Epoch.Equal(l.CreatedAt))

		_, err = q.FetchByID(ctx, unknown)
		var ce *cerr.Error
		lrts.Require().ErrorAs(err, &ce)
		lrts.Equal(http.StatusNotFound, ce.HTTPStatusCode)

		lrts.NoError(q.Ping(ctx))
	})
}

func (lrts *ListingsRepoTestSuite) TestInsertFailures() {
	err := lrts.Pool.Conn(lrts.Ctx, func(
		ctx context.Context, c repo.Conn,
	) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := lrts.Repo.Tx(tx)
			dup := lrts.Listings[0]
			_, err := q.Insert(ctx, &dup)
			var ce *cerr.Error
			lrts.Require().ErrorAs(err, &ce)
			lrts.Equal(http.StatusConflict, ce.HTTPStatusCode)
			return err
		})
	})
	lrts.Error(err, "failed transaction is rolled back")

	bad := fakerepo.NewListing("Toyota", "Camry", 2022, -1, 100)
	err = lrts.Pool.Conn(lrts.Ctx, func(
		ctx context.Context, c repo.Conn,
	) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			_, err := lrts.Repo.Tx(tx).Insert(ctx, &bad)
			return err
		})
	})
	var ve *model.ListingValidationError
	lrts.Require().ErrorAs(err, &ve)
	lrts.Equal("price", ve.Field)
}
