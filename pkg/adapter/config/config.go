// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the carhub to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory items)
// and a series of functional options (for the optional items), so they
// are validated again by the relevant end-component (such as a UseCase
// instance).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/momeni/carhub/pkg/adapter/config/vers"
	"github.com/momeni/carhub/pkg/adapter/db/postgres"
	"github.com/momeni/carhub/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// EnvPrefix is prepended to the names of the environment variables
// which may override the configuration file settings.
const EnvPrefix = "CARHUB_"

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is implemented with
// primitive fields or structs which are defined locally, so the config
// file format can be kept intact while other layers change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Logging  Logging  // structured logging settings
	Usecases Usecases // Supported use cases configuration settings

	// Vers contains the configuration file and database schema version
	// strings corresponding to this Config instance and its Database
	// target.
	Vers vers.Config `yaml:",inline"`
}

// Load function loads the configuration file from path, overrides its
// settings by the CARHUB_* environment variables, and validates and
// normalizes the result. The config file must conform with the latest
// known configuration format and its database schema version must be
// supported by the postgres adapter.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data, os.LookupEnv)
}

// Parse deserializes data as a Config instance, overrides its settings
// using the lookupEnv function (which has the same semantic as the
// os.LookupEnv), and validates and normalizes the result.
func Parse(
	data []byte, lookupEnv func(key string) (string, bool),
) (*Config, error) {
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if err := v.Validate(Major, Minor); err != nil {
		return nil, fmt.Errorf(
			"unexpected config version %s: %w", v.Versions.Config, err,
		)
	}
	if err := v.ValidateDatabase(postgres.Version); err != nil {
		return nil, err
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.overrideFromEnv(lookupEnv); err != nil {
		return nil, fmt.Errorf("overriding from environment: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

func (c *Config) overrideFromEnv(
	lookupEnv func(key string) (string, bool),
) error {
	for _, o := range []struct {
		key string
		dst *string
	}{
		{"DATABASE_HOST", &c.Database.Host},
		{"DATABASE_NAME", &c.Database.Name},
		{"DATABASE_USER", &c.Database.User},
		{"DATABASE_PASS_DIR", &c.Database.PassDir},
		{"GIN_ADDRESS", &c.Gin.Address},
	} {
		if v, ok := lookupEnv(EnvPrefix + o.key); ok {
			*o.dst = v
		}
	}
	if v, ok := lookupEnv(EnvPrefix + "DATABASE_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sDATABASE_PORT=%q: %w", EnvPrefix, v, err)
		}
		c.Database.Port = port
	}
	return nil
}

// ValidateAndNormalize validates all settings and fills the missing
// optional settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Gin.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating gin settings: %w", err)
	}
	if err := c.Logging.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	if err := c.Usecases.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating use cases settings: %w", err)
	}
	return nil
}
