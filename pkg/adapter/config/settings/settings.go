// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the generic helpers which fill the optional
// configuration settings with their defaults and keep them in their
// acceptable ranges, alongside the setting types (such as Duration)
// which need a custom text representation in the YAML files.
//
// Optional settings are represented by pointers, so a nil pointer
// means that the setting was absent from the configuration file.
package settings

import (
	"cmp"
	"fmt"
)

// Default makes *p point to a copy of def if *p is nil. Present
// settings are left untouched.
func Default[T any](p **T, def T) {
	if *p == nil {
		*p = &def
	}
}

// OutOfRangeError reports a setting which was moved into its range
// by the Clamp function. Value is the original setting.
type OutOfRangeError[T cmp.Ordered] struct {
	Value T
	Bound T
	Below bool // true if Value was less than the lower bound
}

// Error implements the error interface.
func (e *OutOfRangeError[T]) Error() string {
	if e.Below {
		return fmt.Sprintf("%v is less than %v", e.Value, e.Bound)
	}
	return fmt.Sprintf("%v is greater than %v", e.Value, e.Bound)
}

// Clamp moves a present **p setting into the [*lo, *hi] range and
// reports the original value if it was moved. A nil lo or hi leaves
// that side unbounded. The caller decides if a moved setting is an
// error or deserves a warning. If both bounds are present, *lo must
// not be greater than *hi.
func Clamp[T cmp.Ordered](p **T, lo, hi *T) *OutOfRangeError[T] {
	if *p == nil {
		return nil
	}
	v := **p
	switch {
	case lo != nil && v < *lo:
		**p = *lo
		return &OutOfRangeError[T]{Value: v, Bound: *lo, Below: true}
	case hi != nil && v > *hi:
		**p = *hi
		return &OutOfRangeError[T]{Value: v, Bound: *hi}
	}
	return nil
}
