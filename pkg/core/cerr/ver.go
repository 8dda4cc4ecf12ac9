// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/carhub/pkg/core/model"
)

// MismatchingSemVerError indicates an error condition where a resource
// with a specific semantic version was expected, but another version
// was present. The Resource names what was versioned, such as the
// configuration file or the database schema.
type MismatchingSemVerError struct {
	Resource string
	Expected model.SemVer
	Actual   model.SemVer
}

// Error returns a string representation of `msve` error instance. This
// method causes *MismatchingSemVerError to implement error interface.
func (msve *MismatchingSemVerError) Error() string {
	return fmt.Sprintf(
		"%s: expected v%s, but got v%s",
		msve.Resource, msve.Expected.String(), msve.Actual.String(),
	)
}
