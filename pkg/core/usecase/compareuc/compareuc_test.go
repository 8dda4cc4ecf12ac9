// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package compareuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carhub/internal/test/fakerepo"
	"github.com/momeni/carhub/pkg/core/cerr"
	"github.com/momeni/carhub/pkg/core/model"
	"github.com/momeni/carhub/pkg/core/usecase/compareuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CompareTestSuite struct {
	suite.Suite

	Ctx      context.Context
	Listings []model.Listing
	Repo     *fakerepo.Listings
	UC       *compareuc.UseCase
}

func TestCompareTestSuite(t *testing.T) {
	suite.Run(t, new(CompareTestSuite))
}

func (cts *CompareTestSuite) SetupTest() {
	cts.Ctx = context.Background()
	cts.Listings = fakerepo.Showroom()
	brandNew := fakerepo.NewListing("Ford", "Mustang", 2025, 55000, 0)
	cts.Listings = append(cts.Listings, brandNew)
	cts.Repo = fakerepo.NewListings(cts.Listings...)
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	uc, err := compareuc.New(
		&fakerepo.Pool{}, cts.Repo,
		compareuc.WithClock(func() time.Time { return now }),
	)
	cts.Require().NoError(err, "creating comparison use case")
	cts.UC = uc
}

func (cts *CompareTestSuite) ids(indices ...int) []uuid.UUID {
	r := make([]uuid.UUID, len(indices))
	for i, idx := range indices {
		r[i] = cts.Listings[idx].ID
	}
	return r
}

func (cts *CompareTestSuite) statusCode(err error) int {
	var ce *cerr.Error
	cts.Require().ErrorAs(err, &ce)
	return ce.HTTPStatusCode
}

func (cts *CompareTestSuite) TestTwoListings() {
	// BMW X5 before Toyota Camry, so the request order must be kept
	c, err := cts.UC.Compare(cts.Ctx, cts.ids(2, 0))
	cts.Require().NoError(err)
	cts.Require().Len(c.Listings, 2)
	bmw, camry := c.Listings[0], c.Listings[1]
	cts.Equal("X5", bmw.Model)
	cts.Equal("Camry", camry.Model)

	cts.Require().NotNil(camry.PricePerMile)
	cts.InDelta(1.9, *camry.PricePerMile, 1e-9)
	cts.Require().NotNil(bmw.PricePerMile)
	cts.InDelta(8.13, *bmw.PricePerMile, 1e-9)
	cts.Equal(2, camry.Age)
	cts.Equal(1, bmw.Age)

	cts.Equal(model.ComparisonSummary{
		LowestPrice:    28500,
		HighestPrice:   65000,
		LowestMileage:  8000,
		HighestMileage: 15000,
		OldestYear:     2022,
		NewestYear:     2023,
		PriceRange:     model.Range[float64]{Min: 28500, Max: 65000},
		YearRange:      model.Range[int]{Min: 2022, Max: 2023},
	}, c.Summary)
}

func (cts *CompareTestSuite) TestSummaryAcrossFourListings() {
	c, err := cts.UC.Compare(cts.Ctx, cts.ids(1, 2, 0, 5))
	cts.Require().NoError(err)
	cts.Equal(24000.0, c.Summary.LowestPrice)
	cts.Equal(65000.0, c.Summary.HighestPrice)
	cts.Equal(0, c.Summary.LowestMileage)
	cts.Equal(22000, c.Summary.HighestMileage)
	cts.Equal(model.Range[int]{Min: 2021, Max: 2025}, c.Summary.YearRange)

	mustang := c.Listings[3]
	cts.Nil(mustang.PricePerMile, "zero mileage has no price per mile")
	cts.Equal(-1, mustang.Age, "next year models have a negative age")
}

func (cts *CompareTestSuite) TestInactiveListingsAreComparable() {
	c, err := cts.UC.Compare(cts.Ctx, cts.ids(4, 3))
	cts.Require().NoError(err)
	cts.Equal(model.ListingStatusInactive, c.Listings[0].Status)
}

func (cts *CompareTestSuite) TestSizeBounds() {
	for _, n := range []int{0, 1, 5, 6} {
		ids := make([]uuid.UUID, n)
		for i := range ids {
			ids[i] = uuid.New()
		}
		_, err := cts.UC.Compare(cts.Ctx, ids)
		cts.Equal(http.StatusBadRequest, cts.statusCode(err), "n=%d", n)
		var se model.ComparisonSizeError
		cts.Require().ErrorAs(err, &se)
		cts.Equal(n, int(se))
		cts.Contains(err.Error(), "Please provide 2-4 car IDs")
	}
	cts.Zero(cts.Repo.Calls["FetchByIDs"], "invalid requests hit no DB")
}

func (cts *CompareTestSuite) TestDuplicates() {
	_, err := cts.UC.Compare(cts.Ctx, cts.ids(0, 1, 0))
	cts.Equal(http.StatusBadRequest, cts.statusCode(err))
	var de model.DuplicateListingError
	cts.Require().ErrorAs(err, &de)
	cts.Equal(cts.Listings[0].ID, uuid.UUID(de))
}

func (cts *CompareTestSuite) TestMissingListings() {
	x, y := uuid.New(), uuid.New()
	c, err := cts.UC.Compare(cts.Ctx, []uuid.UUID{
		x, cts.Listings[0].ID, y,
	})
	cts.Nil(c)
	cts.Equal(http.StatusNotFound, cts.statusCode(err))
	var me model.MissingListingsError
	cts.Require().ErrorAs(err, &me)
	cts.Equal(model.MissingListingsError{x, y}, me)
}

func (cts *CompareTestSuite) TestDataStoreFailure() {
	cts.Repo.Err = errors.New("too many connections")
	_, err := cts.UC.Compare(cts.Ctx, cts.ids(0, 1))
	cts.True(cerr.IsDataStore(err))
}

func TestWithClockValidation(t *testing.T) {
	p, rp := &fakerepo.Pool{}, fakerepo.NewListings()
	_, err := compareuc.New(p, rp, compareuc.WithClock(nil))
	assert.Error(t, err)
	_, err = compareuc.New(p, rp,
		compareuc.WithClock(time.Now), compareuc.WithClock(time.Now),
	)
	assert.Error(t, err)
	uc, err := compareuc.New(p, rp)
	require.NoError(t, err)
	assert.NotNil(t, uc)
}
