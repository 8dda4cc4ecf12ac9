// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/carhub/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() model.Listing {
	return model.Listing{
		Make:            "Toyota",
		Model:           "Camry",
		Year:            2022,
		Price:           28500,
		Mileage:         15000,
		FuelType:        "Gasoline",
		Transmission:    "Automatic",
		ConditionRating: model.DefaultConditionRating,
		Status:          model.ListingStatusActive,
	}
}

func TestListingValidate(t *testing.T) {
	l := validListing()
	require.NoError(t, l.Validate(2024))

	for _, tc := range []struct {
		field  string
		mutate func(l *model.Listing)
	}{
		{"make", func(l *model.Listing) { l.Make = "" }},
		{"model", func(l *model.Listing) { l.Model = "" }},
		{"fuel_type", func(l *model.Listing) { l.FuelType = "" }},
		{"transmission", func(l *model.Listing) { l.Transmission = "" }},
		{"year", func(l *model.Listing) { l.Year = 1885 }},
		{"year", func(l *model.Listing) { l.Year = 2026 }},
		{"price", func(l *model.Listing) { l.Price = 0 }},
		{"mileage", func(l *model.Listing) { l.Mileage = -1 }},
		{"condition_rating", func(l *model.Listing) { l.ConditionRating = 6 }},
	} {
		l := validListing()
		tc.mutate(&l)
		var lve *model.ListingValidationError
		if assert.ErrorAs(t, l.Validate(2024), &lve, tc.field) {
			assert.Equal(t, tc.field, lve.Field)
		}
	}

	l.Year = 2025
	assert.NoError(t, l.Validate(2024), "next year models are accepted")
	l.Status = model.ListingStatusInvalid
	var lse model.ListingStatusError
	assert.ErrorAs(t, l.Validate(2024), &lse)
}

func TestListingStatus(t *testing.T) {
	for _, s := range []string{"active", "inactive", "pending"} {
		ls, err := model.ParseListingStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, ls.String())
	}
	_, err := model.ParseListingStatus("sold")
	assert.ErrorIs(t, err, model.ErrUnknownListingStatus)

	var ls model.ListingStatus
	assert.Error(t, json.Unmarshal([]byte(`"archived"`), &ls))
	_, err = json.Marshal(model.ListingStatus(9))
	assert.Error(t, err)
}

func TestFilterNormalize(t *testing.T) {
	f := model.Filter{}
	f.Normalize(12, 100)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 12, f.Limit)
	assert.Equal(t, 0, f.Offset())

	f = model.Filter{Page: 3, Limit: 500}
	f.Normalize(12, 100)
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 200, f.Offset())

	f = model.Filter{Page: -2, Limit: -5}
	f.Normalize(12, 100)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 12, f.Limit)
}

func TestFilterPastEnd(t *testing.T) {
	for _, tc := range []struct {
		page, limit int
		total       int64
		past        bool
	}{
		{1, 12, 0, true},
		{1, 12, 1, false},
		{2, 6, 12, false},
		{3, 6, 12, true},
		{3, 6, 13, false},
		{1e18, 12, 25, true},
		{math.MaxInt, 100, math.MaxInt64, true},
	} {
		f := model.Filter{Page: tc.page, Limit: tc.limit}
		assert.Equal(
			t, tc.past, f.PastEnd(tc.total),
			"page=%d limit=%d total=%d", tc.page, tc.limit, tc.total,
		)
	}
}

func TestBounds(t *testing.T) {
	lo, hi := 10, 20
	b := model.Bounds[int]{Min: &lo, Max: &hi}
	assert.True(t, b.Contains(10))
	assert.True(t, b.Contains(20))
	assert.False(t, b.Contains(9))
	assert.False(t, b.Contains(21))
	assert.True(t, model.Bounds[int]{}.Contains(-100))
	assert.True(t, model.Bounds[int]{}.IsZero())
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, model.Pagination{
		Page: 2, Limit: 12, Total: 25, TotalPages: 3,
	}, model.NewPagination(2, 12, 25))
	assert.Equal(t, 0, model.NewPagination(1, 12, 0).TotalPages)
	assert.Equal(t, 2, model.NewPagination(1, 6, 12).TotalPages)
}

func TestCompared(t *testing.T) {
	l := validListing()
	l.Price, l.Mileage, l.Year = 42000, 12000, 2022
	cl := l.Compared(2024)
	require.NotNil(t, cl.PricePerMile)
	assert.InDelta(t, 3.5, *cl.PricePerMile, 1e-9)
	assert.Equal(t, 2, cl.Age)

	l.Mileage, l.Year = 0, 2025
	cl = l.Compared(2024)
	assert.Nil(t, cl.PricePerMile, "undefined for brand-new cars")
	assert.Equal(t, -1, cl.Age)

	l.Price, l.Mileage = 10000, 3
	assert.InDelta(t, 3333.33, *l.Compared(2024).PricePerMile, 1e-9)
}

func TestSummarize(t *testing.T) {
	ls := []model.Listing{validListing(), validListing(), validListing()}
	ls[0].Price, ls[0].Mileage, ls[0].Year = 24000, 22000, 2021
	ls[1].Price, ls[1].Mileage, ls[1].Year = 65000, 8000, 2023
	ls[2].Price, ls[2].Mileage, ls[2].Year = 28500, 15000, 2022
	assert.Equal(t, model.ComparisonSummary{
		LowestPrice:    24000,
		HighestPrice:   65000,
		LowestMileage:  8000,
		HighestMileage: 22000,
		OldestYear:     2021,
		NewestYear:     2023,
		PriceRange:     model.Range[float64]{Min: 24000, Max: 65000},
		YearRange:      model.Range[int]{Min: 2021, Max: 2023},
	}, model.Summarize(ls))
}

func TestComparisonErrors(t *testing.T) {
	assert.Equal(
		t, "Please provide 2-4 car IDs for comparison (got 1)",
		model.ComparisonSizeError(1).Error(),
	)
	id := uuid.MustParse("9b2f4f06-64a5-4b5e-9d53-8bbd9f0e7d1a")
	err := fmt.Errorf("comparing: %w", model.MissingListingsError{id})
	var mle model.MissingListingsError
	require.True(t, errors.As(err, &mle))
	assert.Equal(t, []uuid.UUID{id}, []uuid.UUID(mle))
	assert.Contains(t, err.Error(), id.String())
}

func ExampleSemVer_UnmarshalText() {
	var sv model.SemVer
	if err := sv.UnmarshalText([]byte("1.2")); err != nil {
		panic(err)
	}
	fmt.Println(sv, model.SemVer{1, 3, 0}.Supports(sv))
	// Output: 1.2.0 true
}

func ExampleComparedListing() {
	l := model.Listing{
		Make: "BMW", Model: "X5", Year: 2023, Price: 65000, Mileage: 8000,
	}
	cl := l.Compared(2024)
	b, err := json.Marshal(struct {
		PricePerMile *float64 `json:"pricePerMile"`
		Age          int      `json:"age"`
	}{cl.PricePerMile, cl.Age})
	if err != nil {
		panic(err)
	}
	fmt.Println(string(b))
	// Output: {"pricePerMile":8.13,"age":1}
}
