// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., json tags for the REST
// adapter) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Listing models one vehicle which is offered for sale.
// The feature tags and image references are kept as structured lists
// here, while the storage layer is free to serialize them. For the
// persisted form, see the unexported gListing struct in the
// pkg/adapter/db/postgres/listingsrp/query.go file.
type Listing struct {
	ID      uuid.UUID  `json:"id"`
	OwnerID *uuid.UUID `json:"user_id"` // nil for listings with no owner

	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	Mileage      int     `json:"mileage"`
	FuelType     string  `json:"fuel_type"`
	Transmission string  `json:"transmission"`

	BodyType   *string `json:"body_type"`
	Color      *string `json:"color"`
	EngineSize *string `json:"engine_size"`
	Doors      *int    `json:"doors"`
	Seats      *int    `json:"seats"`

	ConditionRating int    `json:"condition_rating"` // 1 to 5
	Description     string `json:"description"`

	Image    *string  `json:"image"`    // primary image reference
	Images   []string `json:"images"`   // additional images, ordered
	Features []string `json:"features"` // feature tags, unordered

	Status    ListingStatus `json:"status"`
	Views     int           `json:"views"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DefaultConditionRating is used when a listing is created without
// an explicit condition rating.
const DefaultConditionRating = 5

// FirstModelYear is the smallest acceptable model year. Anything older
// than the first production automobile is rejected as implausible.
const FirstModelYear = 1886

// ListingValidationError indicates that a listing could not pass the
// Validate method. Field is the json name of the offending field.
type ListingValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ListingValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the data model invariants of a listing which is about
// to be stored. The currentYear argument bounds the model year, so
// next year models may be listed, but not the ones after them.
// The first violation is returned as a *ListingValidationError.
func (l *Listing) Validate(currentYear int) error {
	switch {
	case l.Make == "":
		return &ListingValidationError{"make", "is required"}
	case l.Model == "":
		return &ListingValidationError{"model", "is required"}
	case l.FuelType == "":
		return &ListingValidationError{"fuel_type", "is required"}
	case l.Transmission == "":
		return &ListingValidationError{"transmission", "is required"}
	case l.Year < FirstModelYear || l.Year > currentYear+1:
		return &ListingValidationError{
			"year", fmt.Sprintf(
				"%d is not in [%d, %d]",
				l.Year, FirstModelYear, currentYear+1,
			),
		}
	case l.Price <= 0:
		return &ListingValidationError{"price", "must be positive"}
	case l.Mileage < 0:
		return &ListingValidationError{"mileage", "may not be negative"}
	case l.ConditionRating < 1 || l.ConditionRating > 5:
		return &ListingValidationError{
			"condition_rating", "must be in [1, 5]",
		}
	}
	return l.Status.Validate()
}

// ListingStatus specifies the lifecycle status of a listing. Although
// this enum is numeric, it is (de)serialized as a string for
// readability, both in the database and in the REST API.
type ListingStatus int

// Valid values for the ListingStatus enum.
const (
	ListingStatusInvalid ListingStatus = iota // zero value is invalid

	ListingStatusActive   // listed and visible in searches
	ListingStatusInactive // hidden by its owner or an admin
	ListingStatusPending  // waiting for an admin review
)

// ErrUnknownListingStatus indicates that a given string may not be
// parsed as a known listing status. The invalid string itself is not
// included because the caller of ParseListingStatus knows about it.
var ErrUnknownListingStatus = errors.New("unknown listing status")

// ListingStatusError indicates an invalid numeric listing status.
type ListingStatusError int

// Error implements the error interface, returning a string
// representation of the ListingStatusError.
func (e ListingStatusError) Error() string {
	return fmt.Sprintf("invalid listing status: %d", int(e))
}

// Validate returns nil if ListingStatus value is valid. For invalid
// values, an instance of the ListingStatusError will be returned.
func (s ListingStatus) Validate() error {
	switch s {
	case ListingStatusActive, ListingStatusInactive, ListingStatusPending:
		return nil
	default:
		return ListingStatusError(s)
	}
}

// String converts the ListingStatus enum to a string. Invalid listing
// statuses cause a panic.
func (s ListingStatus) String() string {
	switch s {
	case ListingStatusActive:
		return "active"
	case ListingStatusInactive:
		return "inactive"
	case ListingStatusPending:
		return "pending"
	default:
		panic(ListingStatusError(s))
	}
}

// ParseListingStatus parses the given string and returns a
// ListingStatus. For invalid strings, ListingStatusInvalid and
// ErrUnknownListingStatus will be returned.
func ParseListingStatus(s string) (ListingStatus, error) {
	switch s {
	case "active":
		return ListingStatusActive, nil
	case "inactive":
		return ListingStatusInactive, nil
	case "pending":
		return ListingStatusPending, nil
	default:
		return ListingStatusInvalid, ErrUnknownListingStatus
	}
}

// MarshalText implements encoding.TextMarshaler, so json encoders
// write the status as a string.
func (s ListingStatus) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ListingStatus) UnmarshalText(text []byte) error {
	ls, err := ParseListingStatus(string(text))
	if err != nil {
		return fmt.Errorf("%q: %w", text, err)
	}
	*s = ls
	return nil
}
