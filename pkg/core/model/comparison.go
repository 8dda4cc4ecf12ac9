// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"cmp"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// These constants bound the number of listings which may be compared
// side by side in one request.
const (
	MinComparisonSize = 2
	MaxComparisonSize = 4
)

// PricePerMilePrecision is the number of decimal digits which are
// kept when the price-per-mile derived field is rounded.
const PricePerMilePrecision = 2

// ComparisonSizeError indicates that a comparison was requested for
// a number of listings out of the [MinComparisonSize, MaxComparisonSize]
// range. Its value is the number of requested listings.
type ComparisonSizeError int

// Error implements the error interface, naming the required bounds.
func (e ComparisonSizeError) Error() string {
	return fmt.Sprintf(
		"Please provide %d-%d car IDs for comparison (got %d)",
		MinComparisonSize, MaxComparisonSize, int(e),
	)
}

// DuplicateListingError indicates that one listing identifier was
// repeated in a comparison request.
type DuplicateListingError uuid.UUID

// Error implements the error interface.
func (e DuplicateListingError) Error() string {
	return fmt.Sprintf("car %s is listed more than once", uuid.UUID(e))
}

// MissingListingsError lists the identifiers which could not be
// resolved to existing listings.
type MissingListingsError []uuid.UUID

// Error implements the error interface.
func (e MissingListingsError) Error() string {
	ids := make([]string, len(e))
	for i, id := range e {
		ids[i] = id.String()
	}
	return "cars not found: " + strings.Join(ids, ", ")
}

// ComparedListing is a listing augmented with the derived fields which
// are computed at comparison time and never persisted.
type ComparedListing struct {
	Listing

	// PricePerMile is the price divided by the mileage, rounded to
	// PricePerMilePrecision decimal digits. It is nil when mileage is
	// zero, since no meaningful ratio exists for a brand-new car.
	PricePerMile *float64 `json:"pricePerMile"`

	// Age is the number of years since the model year. It may be zero
	// or negative for current and next year models.
	Age int `json:"age"`
}

// Compared computes the derived fields of l, taking currentYear as the
// reference for its age.
func (l Listing) Compared(currentYear int) ComparedListing {
	cl := ComparedListing{
		Listing: l,
		Age:     currentYear - l.Year,
	}
	if l.Mileage > 0 {
		ppm := roundTo(l.Price/float64(l.Mileage), PricePerMilePrecision)
		cl.PricePerMile = &ppm
	}
	return cl
}

func roundTo(x float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(x*p) / p
}

// Range is a closed interval which is reported by comparison summaries.
type Range[T cmp.Ordered] struct {
	Min T `json:"min"`
	Max T `json:"max"`
}

// ComparisonSummary holds the extrema of a set of compared listings.
// The PriceRange and YearRange fields repeat the flat price and year
// fields because clients consume both shapes.
type ComparisonSummary struct {
	LowestPrice    float64 `json:"lowestPrice"`
	HighestPrice   float64 `json:"highestPrice"`
	LowestMileage  int     `json:"lowestMileage"`
	HighestMileage int     `json:"highestMileage"`
	OldestYear     int     `json:"oldestYear"`
	NewestYear     int     `json:"newestYear"`

	PriceRange Range[float64] `json:"priceRange"`
	YearRange  Range[int]     `json:"yearRange"`
}

// Comparison is the outcome of comparing a set of listings.
type Comparison struct {
	Listings []ComparedListing `json:"cars"`
	Summary  ComparisonSummary `json:"summary"`
}

// Summarize computes the summary of the given listings. The ls slice
// must not be empty.
func Summarize(ls []Listing) ComparisonSummary {
	price := Range[float64]{ls[0].Price, ls[0].Price}
	mileage := Range[int]{ls[0].Mileage, ls[0].Mileage}
	year := Range[int]{ls[0].Year, ls[0].Year}
	for _, l := range ls[1:] {
		price = price.extend(l.Price)
		mileage = mileage.extend(l.Mileage)
		year = year.extend(l.Year)
	}
	return ComparisonSummary{
		LowestPrice:    price.Min,
		HighestPrice:   price.Max,
		LowestMileage:  mileage.Min,
		HighestMileage: mileage.Max,
		OldestYear:     year.Min,
		NewestYear:     year.Max,
		PriceRange:     price,
		YearRange:      year,
	}
}

func (r Range[T]) extend(v T) Range[T] {
	return Range[T]{Min: min(r.Min, v), Max: max(r.Max, v)}
}
