// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the dispatchlog CLI to instantiate
// different components, from the adapter or use cases layers, using
// those loaded configuration settings.
// The parsed and validated settings are passed to their ultimate
// components as a series of individual params (for the mandatory
// items) and a series of functional options (for the optional items),
// so they may be validated again by the relevant end-component such
// as the dispatchuc.UseCase instance.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/momeni/dispatchlog/pkg/adapter/config/settings"
	"github.com/momeni/dispatchlog/pkg/adapter/config/vers"
	"github.com/momeni/dispatchlog/pkg/adapter/db/sqlite"
	"github.com/momeni/dispatchlog/pkg/adapter/idgen"
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
var Version = vers.SemVer{Major, Minor, Patch}

// Supported storage backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Supported logging formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultPath is the configuration file which is loaded when no path
// is given explicitly. It is fine for it to be missing.
const DefaultPath = "configs/sample-config.yaml"

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. Optional fields are
// pointers, so the missing settings can be detected and filled by their
// default values in the ValidateAndNormalize method.
type Config struct {
	Storage  Storage  // Client-local storage settings
	Logging  Logging  // Structured logging settings
	Dispatch Dispatch // Dispatch use case settings

	// Vers contains the configuration file format version.
	Vers vers.Config `yaml:",inline"`
}

// Storage contains the settings of the client-local storage.
type Storage struct {
	// Backend is one of badger, sqlite, or memory.
	Backend *string `yaml:"backend"`
	// Path is the directory which keeps the storage files.
	// It is ignored by the memory backend.
	Path *string `yaml:"path"`
	// SlowThreshold is the minimum duration of SQL statements which
	// are logged as slow queries by the sqlite backend.
	SlowThreshold *settings.Duration `yaml:"slow-threshold"`
}

// Logging contains the structured logging settings.
type Logging struct {
	Level  *string `yaml:"level"`  // debug, info, warn, or error
	Format *string `yaml:"format"` // text or json
}

// Dispatch contains the settings of the dispatch use case.
type Dispatch struct {
	// Node is the snowflake node number which distinguishes the ids
	// of entries which are created by different installations.
	Node *int64 `yaml:"node"`
	// SeedFile is an optional YAML file containing the reference data
	// which is used when the storage has no (valid) reference data.
	SeedFile *string `yaml:"seed-file"`
	// DataKey and LogKey are the storage keys of the reference data
	// and the dispatch log. Both or none of them must be set.
	DataKey *string `yaml:"data-key"`
	LogKey  *string `yaml:"log-key"`
}

// Default returns a Config which is filled with the default settings.
func Default() *Config {
	c := &Config{Vers: vers.Config{Versions: vers.Versions{Config: Version}}}
	if err := c.ValidateAndNormalize(); err != nil {
		panic(err) // defaults are always valid
	}
	return c
}

// Load reads the path configuration file, validates and normalizes its
// settings, and applies the environment variables overrides. If path
// is the DefaultPath and it does not exist, the default settings are
// used instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		c := Default()
		if err := c.applyEnv(); err != nil {
			return nil, err
		}
		return c, nil
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse unmarshals the data byte slice, checks its version, and then
// validates and normalizes its settings. Extra items in the data will
// be ignored and missing items will take their default values.
func Parse(data []byte) (*Config, error) {
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if err := v.Validate(Version); err != nil {
		return nil, fmt.Errorf("unexpected config version: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It also replaces the
// missing settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Version); err != nil {
		return fmt.Errorf("expecting version v%d.%d: %w", Major, Minor, err)
	}
	settings.Default(&c.Storage.Backend, BackendBadger)
	settings.Default(&c.Storage.Path, defaultStoragePath())
	settings.Default(
		&c.Storage.SlowThreshold,
		settings.Duration(sqlite.DefaultSlowThreshold),
	)
	settings.Default(&c.Logging.Level, "info")
	settings.Default(&c.Logging.Format, FormatText)
	settings.Default(&c.Dispatch.Node, int64(1))
	return c.validate()
}

func (c *Config) validate() error {
	if err := settings.VerifyOneOf(
		c.Storage.Backend, BackendBadger, BackendSQLite, BackendMemory,
	); err != nil {
		return fmt.Errorf("storage backend: %w", err)
	}
	if *c.Storage.Backend != BackendMemory && *c.Storage.Path == "" {
		return errors.New("storage path: must not be empty")
	}
	if time.Duration(*c.Storage.SlowThreshold) <= 0 {
		return errors.New("storage slow-threshold: must be positive")
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return fmt.Errorf("logging level: %w", err)
	}
	if err := settings.VerifyOneOf(
		c.Logging.Format, FormatText, FormatJSON,
	); err != nil {
		return fmt.Errorf("logging format: %w", err)
	}
	if err := settings.VerifyRange(
		c.Dispatch.Node, idgen.MinNode, idgen.MaxNode,
	); err != nil {
		return fmt.Errorf("dispatch node: %w", err)
	}
	if (c.Dispatch.DataKey == nil) != (c.Dispatch.LogKey == nil) {
		return errors.New("dispatch data-key and log-key: set both or none")
	}
	return nil
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "dispatchlog-data"
	}
	return filepath.Join(dir, "dispatchlog")
}

// Marshalled struct contains a field for each one of the Config struct
// fields, replacing the fields which need a custom text representation
// by their primitive types, so it can be marshalled instead of Config.
type Marshalled struct {
	Storage struct {
		Backend       *string `yaml:"backend,omitempty"`
		Path          *string `yaml:"path,omitempty"`
		SlowThreshold *string `yaml:"slow-threshold,omitempty"`
	}
	Logging  Logging
	Dispatch struct {
		Node     *int64  `yaml:"node,omitempty"`
		SeedFile *string `yaml:"seed-file,omitempty"`
		DataKey  *string `yaml:"data-key,omitempty"`
		LogKey   *string `yaml:"log-key,omitempty"`
	}
	Versions struct {
		Config string `yaml:"config"`
	} `yaml:"versions"`
}

// MarshalYAML returns the Marshalled form of `c`, so it is encoded
// instead of the `c` Config instance.
func (c *Config) MarshalYAML() (interface{}, error) {
	return c.Marshal(), nil
}

// Marshal creates an instance of the Marshalled struct and fills it
// with the `c` Config instance contents.
func (c *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Storage.Backend = c.Storage.Backend
	m.Storage.Path = c.Storage.Path
	m.Storage.SlowThreshold = c.Storage.SlowThreshold.Marshal()
	m.Logging = c.Logging
	m.Dispatch.Node = c.Dispatch.Node
	m.Dispatch.SeedFile = c.Dispatch.SeedFile
	m.Dispatch.DataKey = c.Dispatch.DataKey
	m.Dispatch.LogKey = c.Dispatch.LogKey
	m.Versions.Config = c.Vers.Versions.Config.String()
	return m
}

// Clone creates a deep copy of `c`.
func (c *Config) Clone() *Config {
	return &Config{
		Storage: Storage{
			Backend:       settings.Clone(c.Storage.Backend),
			Path:          settings.Clone(c.Storage.Path),
			SlowThreshold: settings.Clone(c.Storage.SlowThreshold),
		},
		Logging: Logging{
			Level:  settings.Clone(c.Logging.Level),
			Format: settings.Clone(c.Logging.Format),
		},
		Dispatch: Dispatch{
			Node:     settings.Clone(c.Dispatch.Node),
			SeedFile: settings.Clone(c.Dispatch.SeedFile),
			DataKey:  settings.Clone(c.Dispatch.DataKey),
			LogKey:   settings.Clone(c.Dispatch.LogKey),
		},
		Vers: c.Vers,
	}
}
