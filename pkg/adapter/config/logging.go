// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/momeni/carhub/pkg/core/log"
)

// Logging contains the structured logging settings.
type Logging struct {
	Level  string `yaml:",omitempty"` // debug, info, warn, or error
	Format string `yaml:",omitempty"` // text or json

	level slog.Level
}

// ValidateAndNormalize parses the logging level and checks the format.
// The info level and text format are used by default.
func (l *Logging) ValidateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	if err := l.level.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	switch l.Format {
	case "":
		l.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format: %q", l.Format)
	}
	return nil
}

// Configure installs a slog handler, writing to w, as the default
// logger. ValidateAndNormalize must be called beforehand.
func (l Logging) Configure(w io.Writer) error {
	return log.Configure(w, l.level, l.Format)
}
