// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which is read from and written to the
// configuration files in the time.ParseDuration format, such as 200ms
// or 1h30m.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler. The d is updated
// only if text can be parsed.
func (d *Duration) UnmarshalText(text []byte) error {
	dd, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// String formats d like time.Duration, dropping the trailing zero
// minutes and seconds, so 2h0m0s is written as 2h.
func (d Duration) String() string {
	s := time.Duration(d).String()
	s = strings.TrimSuffix(s, "m0s")
	if strings.HasSuffix(s, "h0") {
		return strings.TrimSuffix(s, "0")
	}
	if !strings.ContainsAny(s[len(s)-1:], "hms") {
		s += "m"
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LogValue implements slog.LogValuer.
func (d Duration) LogValue() slog.Value {
	return slog.DurationValue(time.Duration(d))
}
