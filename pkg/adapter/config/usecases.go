// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"

	"github.com/momeni/carhub/pkg/adapter/config/settings"
	"github.com/momeni/carhub/pkg/core/log"
	"github.com/momeni/carhub/pkg/core/repo"
	"github.com/momeni/carhub/pkg/core/usecase/compareuc"
	"github.com/momeni/carhub/pkg/core/usecase/listingsuc"
)

// Usecases contains the use cases related settings.
type Usecases struct {
	Listings Listings // listings query use case settings
}

// Listings contains the pagination settings of listing searches.
type Listings struct {
	DefaultPageSize *int `yaml:"default-page-size,omitempty"`
	MaxPageSize     *int `yaml:"max-page-size,omitempty"`
}

// ValidateAndNormalize checks the use cases settings.
func (u *Usecases) ValidateAndNormalize() error {
	return u.Listings.ValidateAndNormalize()
}

// ValidateAndNormalize ensures that the page sizes are positive.
// A default page size which exceeds the max page size is lowered to
// the max page size with a warning.
func (l *Listings) ValidateAndNormalize() error {
	if l.MaxPageSize != nil && *l.MaxPageSize < 1 {
		return errors.New("max-page-size must be positive")
	}
	one := 1
	if err := settings.Clamp(
		&l.DefaultPageSize, &one, l.MaxPageSize,
	); err != nil {
		if err.Below {
			return errors.New("default-page-size must be positive")
		}
		log.Warn(
			context.Background(),
			"default-page-size is lowered to max-page-size",
			log.Err("violation", err),
		)
	}
	return nil
}

// NewUseCase instantiates a listings use case with the configured
// page sizes.
func (l Listings) NewUseCase(
	p repo.Pool, r repo.Listings,
) (*listingsuc.UseCase, error) {
	opts := make([]listingsuc.Option, 0, 2)
	if l.DefaultPageSize != nil {
		opts = append(opts, listingsuc.WithDefaultPageSize(*l.DefaultPageSize))
	}
	if l.MaxPageSize != nil {
		opts = append(opts, listingsuc.WithMaxPageSize(*l.MaxPageSize))
	}
	return listingsuc.New(p, r, opts...)
}

// NewCompareUseCase instantiates a comparison use case. It has no
// settings at this time and uses the wall clock.
func (u Usecases) NewCompareUseCase(
	p repo.Pool, r repo.Listings,
) (*compareuc.UseCase, error) {
	return compareuc.New(p, r)
}
