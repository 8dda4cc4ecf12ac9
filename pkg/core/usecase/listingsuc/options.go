// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package listingsuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the listings use case.
type Option func(uc *UseCase) error

// WithDefaultPageSize option configures the number of listings which
// are returned per page when a search does not specify a limit.
func WithDefaultPageSize(n int) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("default page size (%d) is not positive", n)
		}
		if uc.defaultPageSize != 0 {
			return errors.New("default page size is already configured")
		}
		uc.defaultPageSize = n
		return nil
	}
}

// WithMaxPageSize option configures the upper bound of the page size.
// Larger limits are clamped to n, so no single search may return
// more than n listings.
func WithMaxPageSize(n int) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("max page size (%d) is not positive", n)
		}
		if uc.maxPageSize != 0 {
			return errors.New("max page size is already configured")
		}
		uc.maxPageSize = n
		return nil
	}
}
