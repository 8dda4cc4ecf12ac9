// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer represents a released semantic version, consisting of three
// components: major, minor, and patch. It is used in order to tag the
// configuration file format and the database schema which a binary
// was built for, so mismatching deployments are rejected early.
type SemVer [3]uint

// UnmarshalText deserializes text byte slice as a string consisting of
// one to three dot-separated numbers and fills the sv SemVer instance.
// Missing components are taken as zero. In case of errors, sv will be
// left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) error {
	p := strings.Split(string(text), ".")
	if len(p) > 3 {
		return fmt.Errorf("the %q has too many components", text)
	}
	var v SemVer
	for i, s := range p {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("the %q component is not numeric", s)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// MarshalText implements encoding.TextMarshaler interface and
// serializes `sv` semantic version as its string representation.
func (sv SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

// String returns the sv semantic version as a dot-separated string
// like major.minor.patch.
func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}

// Supports reports if a binary which knows about the sv version can
// work with resources of the `other` version. That is, major versions
// must match and the other minor version may not be newer than sv.
func (sv SemVer) Supports(other SemVer) bool {
	return sv[0] == other[0] && sv[1] >= other[1]
}
