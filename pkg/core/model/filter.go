// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"cmp"
	"log/slog"
)

// Bounds is an inclusive range over an ordered type. Each side is
// optional and a nil bound imposes no constraint on that side, so a
// zero Bounds matches everything.
type Bounds[T cmp.Ordered] struct {
	Min *T
	Max *T
}

// Contains reports if v satisfies both present bounds.
func (b Bounds[T]) Contains(v T) bool {
	if b.Min != nil && v < *b.Min {
		return false
	}
	if b.Max != nil && v > *b.Max {
		return false
	}
	return true
}

// IsZero reports if neither bound is present.
func (b Bounds[T]) IsZero() bool {
	return b.Min == nil && b.Max == nil
}

// LogValue implements slog.LogValuer.
func (b Bounds[T]) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 2)
	if b.Min != nil {
		attrs = append(attrs, slog.Any("min", *b.Min))
	}
	if b.Max != nil {
		attrs = append(attrs, slog.Any("max", *b.Max))
	}
	return slog.GroupValue(attrs...)
}

// Filter is the set of search constraints for one listings query.
// Every field is independently optional. An empty string or a zero
// Bounds means that no constraint is imposed on that dimension.
// Page and Limit are normalized by the Normalize method, so zero
// values select the defaults.
type Filter struct {
	Query string // free-text term, matched as a substring

	Price   Bounds[float64]
	Year    Bounds[int]
	Mileage Bounds[int]

	FuelType     string
	Transmission string
	BodyType     string
	Make         string

	Page  int // one-based page number
	Limit int // page size
}

// Normalize replaces a missing page with the first page, a missing
// limit with defaultLimit, and clamps the limit to maxLimit, so the
// result set remains bounded whatever the caller asks for.
func (f *Filter) Normalize(defaultLimit, maxLimit int) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	f.Limit = min(f.Limit, maxLimit)
}

// Offset returns the number of listings which precede the requested
// page. Normalize must be called beforehand and PastEnd must be false,
// so the product does not overflow.
func (f *Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// PastEnd reports if the requested page starts after the last page of
// total matching listings. It compares page numbers instead of offsets,
// so arbitrarily large pages are reported too. Normalize must be called
// beforehand.
func (f *Filter) PastEnd(total int64) bool {
	if total <= 0 {
		return true
	}
	return int64(f.Page-1) >= (total-1)/int64(f.Limit)+1
}

// LogValue implements slog.LogValuer, so filters may be logged as
// a group containing only their present constraints.
func (f *Filter) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("page", f.Page),
		slog.Int("limit", f.Limit),
	}
	for _, kv := range [...]struct{ k, v string }{
		{"query", f.Query},
		{"fuel_type", f.FuelType},
		{"transmission", f.Transmission},
		{"body_type", f.BodyType},
		{"make", f.Make},
	} {
		if kv.v != "" {
			attrs = append(attrs, slog.String(kv.k, kv.v))
		}
	}
	if !f.Price.IsZero() {
		attrs = append(attrs, slog.Any("price", f.Price))
	}
	if !f.Year.IsZero() {
		attrs = append(attrs, slog.Any("year", f.Year))
	}
	if !f.Mileage.IsZero() {
		attrs = append(attrs, slog.Any("mileage", f.Mileage))
	}
	return slog.GroupValue(attrs...)
}

// Pagination describes one page of a paginated result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the pagination metadata for the given page
// and limit (which must be positive) when total items are matched.
func NewPagination(page, limit int, total int64) Pagination {
	l := int64(limit)
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + l - 1) / l),
	}
}

// Page is one page of listings which matched a Filter.
type Page struct {
	Listings   []Listing  `json:"cars"`
	Pagination Pagination `json:"pagination"`
}
