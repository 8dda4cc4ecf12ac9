// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the versions parsing of the configuration
// files. Two versions are tracked here, namely the configuration file
// format and the database schema. Versions are parsed before the
// actual settings, so an incompatible file can be reported as such
// instead of failing on an unknown or missing setting.
package vers

import (
	"github.com/momeni/carhub/pkg/core/cerr"
	"github.com/momeni/carhub/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config contains the versions of the configuration file and the
// database schema. It is embedded with inline format in the main
// config struct.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file and database schema versions
// which are used for detecting their relevant formats.
type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Load deserializes the data byte slice into a new instance of Config
// struct. Of course, data may contain extra fields which will be
// ignored.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate returns an error if the configuration file version which
// is stored in the vc is not supported by the given major and minor
// versions. That is, stored major version must match with the major
// argument and the stored minor version must be at most equal with
// the given minor version (not newer than it).
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	if expected := (model.SemVer{major, minor, 0}); !expected.Supports(v) {
		return &cerr.MismatchingSemVerError{
			Resource: "config", Expected: expected, Actual: v,
		}
	}
	return nil
}

// ValidateDatabase returns an error if the database schema version
// which is stored in the vc may not be served by a binary which knows
// about the latest schema version.
func (vc *Config) ValidateDatabase(latest model.SemVer) error {
	if v := vc.Versions.Database; !latest.Supports(v) {
		return &cerr.MismatchingSemVerError{
			Resource: "database schema", Expected: latest, Actual: v,
		}
	}
	return nil
}
