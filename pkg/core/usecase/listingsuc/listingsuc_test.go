// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package listingsuc_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/carhub/internal/test/fakerepo"
	"github.com/momeni/carhub/pkg/core/cerr"
	"github.com/momeni/carhub/pkg/core/model"
	"github.com/momeni/carhub/pkg/core/usecase/listingsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func newUseCase(
	t *testing.T, opts ...listingsuc.Option,
) (*listingsuc.UseCase, *fakerepo.Listings, []model.Listing) {
	t.Helper()
	ls := fakerepo.Showroom()
	rp := fakerepo.NewListings(ls...)
	uc, err := listingsuc.New(&fakerepo.Pool{}, rp, opts...)
	require.NoError(t, err, "creating listings use case")
	return uc, rp, ls
}

func ids(ls []model.Listing) []uuid.UUID {
	r := make([]uuid.UUID, len(ls))
	for i, l := range ls {
		r[i] = l.ID
	}
	return r
}

func TestSearchWithoutFilters(t *testing.T) {
	uc, rp, ls := newUseCase(t)
	page, err := uc.Search(context.Background(), model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, model.Pagination{
		Page: 1, Limit: listingsuc.DefaultPageSize, Total: 4, TotalPages: 1,
	}, page.Pagination)
	// newest first, the inactive RAV4 is excluded
	assert.Equal(t,
		[]uuid.UUID{ls[3].ID, ls[2].ID, ls[1].ID, ls[0].ID},
		ids(page.Listings),
	)
	assert.Equal(t, 1, rp.Calls["Count"])
	assert.Equal(t, 1, rp.Calls["Search"])
}

func TestSearchCombinesFilters(t *testing.T) {
	uc, _, ls := newUseCase(t)
	page, err := uc.Search(context.Background(), model.Filter{
		Make:  "Toyota",
		Price: model.Bounds[float64]{Min: ptr(20000.0), Max: ptr(30000.0)},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ls[0].ID}, ids(page.Listings))
	assert.EqualValues(t, 1, page.Pagination.Total)
}

func TestSearchRangesAreInclusive(t *testing.T) {
	uc, _, ls := newUseCase(t)
	page, err := uc.Search(context.Background(), model.Filter{
		Year:    model.Bounds[int]{Min: ptr(2022), Max: ptr(2022)},
		Mileage: model.Bounds[int]{Max: ptr(15000)},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ls[3].ID, ls[0].ID}, ids(page.Listings))
}

func TestSearchFreeText(t *testing.T) {
	uc, _, ls := newUseCase(t)
	cases := map[string][]uuid.UUID{
		"camera":    {ls[0].ID}, // feature tag
		"AUTOPILOT": {ls[3].ID}, // description
		"civ":       {ls[1].ID}, // model prefix
		"sunroof":   {ls[2].ID},
		"o":         {ls[3].ID, ls[2].ID, ls[1].ID, ls[0].ID},
		"Ferrari":   {},
	}
	for q, expected := range cases {
		page, err := uc.Search(context.Background(), model.Filter{Query: q})
		require.NoError(t, err, "query: %q", q)
		assert.Equal(t, expected, ids(page.Listings), "query: %q", q)
	}
}

func TestSearchCategoricalFilters(t *testing.T) {
	uc, _, ls := newUseCase(t)
	page, err := uc.Search(context.Background(), model.Filter{
		BodyType: "Sedan", Transmission: "Automatic",
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ls[3].ID, ls[0].ID}, ids(page.Listings))

	page, err = uc.Search(context.Background(), model.Filter{
		FuelType: "Electric",
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ls[3].ID}, ids(page.Listings))
}

func TestSearchPagination(t *testing.T) {
	uc, _, ls := newUseCase(t)
	page, err := uc.Search(context.Background(), model.Filter{
		Page: 2, Limit: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ls[0].ID}, ids(page.Listings))
	assert.Equal(t, model.Pagination{
		Page: 2, Limit: 3, Total: 4, TotalPages: 2,
	}, page.Pagination)
}

func TestSearchPastTheLastPage(t *testing.T) {
	uc, rp, _ := newUseCase(t)
	page, err := uc.Search(context.Background(), model.Filter{
		Page: 7, Limit: 2,
	})
	require.NoError(t, err)
	assert.NotNil(t, page.Listings)
	assert.Empty(t, page.Listings)
	assert.EqualValues(t, 4, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Zero(t, rp.Calls["Search"], "empty page must not be queried")
}

func TestSearchHugePage(t *testing.T) {
	uc, rp, _ := newUseCase(t)
	for _, p := range []int{1e18, math.MaxInt} {
		page, err := uc.Search(context.Background(), model.Filter{Page: p})
		require.NoError(t, err, "page %d", p)
		assert.Empty(t, page.Listings, "page %d", p)
		assert.EqualValues(t, 4, page.Pagination.Total)
		assert.Equal(t, p, page.Pagination.Page)
	}
	assert.Zero(t, rp.Calls["Search"], "pages past the end are not queried")
}

func TestSearchClampsLimit(t *testing.T) {
	uc, _, _ := newUseCase(t, listingsuc.WithMaxPageSize(3))
	page, err := uc.Search(context.Background(), model.Filter{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, page.Listings, 3)
	assert.Equal(t, 3, page.Pagination.Limit)

	page, err = uc.Search(context.Background(), model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Limit, "default must obey max")
}

func TestSearchDataStoreFailure(t *testing.T) {
	uc, rp, _ := newUseCase(t)
	rp.Err = errors.New("connection reset by peer")
	_, err := uc.Search(context.Background(), model.Filter{})
	require.Error(t, err)
	assert.True(t, cerr.IsDataStore(err))

	uc, err = listingsuc.New(
		&fakerepo.Pool{Err: errors.New("pool closed")},
		fakerepo.NewListings(),
	)
	require.NoError(t, err)
	_, err = uc.Search(context.Background(), model.Filter{})
	assert.True(t, cerr.IsDataStore(err))
}

func TestGet(t *testing.T) {
	uc, _, ls := newUseCase(t)
	l, err := uc.Get(context.Background(), ls[4].ID)
	require.NoError(t, err, "inactive listings may be fetched directly")
	assert.Equal(t, "RAV4", l.Model)

	_, err = uc.Get(context.Background(), uuid.New())
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.HTTPStatusCode)
}

func TestPing(t *testing.T) {
	uc, rp, _ := newUseCase(t)
	assert.NoError(t, uc.Ping(context.Background()))
	rp.Err = errors.New("down")
	assert.True(t, cerr.IsDataStore(uc.Ping(context.Background())))
}

func TestNewRejectsBadOptions(t *testing.T) {
	p, rp := &fakerepo.Pool{}, fakerepo.NewListings()
	_, err := listingsuc.New(p, rp, listingsuc.WithDefaultPageSize(0))
	assert.Error(t, err)
	_, err = listingsuc.New(p, rp,
		listingsuc.WithMaxPageSize(10), listingsuc.WithMaxPageSize(20),
	)
	assert.Error(t, err)
	_, err = listingsuc.New(p, rp,
		listingsuc.WithDefaultPageSize(50), listingsuc.WithMaxPageSize(20),
	)
	assert.Error(t, err)
	_, err = listingsuc.New(p, rp, listingsuc.WithDefaultPageSize(150))
	assert.NoError(t, err, "max follows a large default")
}
