// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables which override the configuration file.
const (
	EnvConfigFile     = "CONFIG_FILE"
	EnvStorageBackend = "DISPATCHLOG_STORAGE_BACKEND"
	EnvStoragePath    = "DISPATCHLOG_STORAGE_PATH"
	EnvLogLevel       = "DISPATCHLOG_LOG_LEVEL"
	EnvLogFormat      = "DISPATCHLOG_LOG_FORMAT"
	EnvNode           = "DISPATCHLOG_NODE"
)

// LoadDotEnv loads the environment variables from the given .env
// files. Variables which are set already are not overridden and
// missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %q: %w", f, err)
		}
	}
	return nil
}

// Path returns the configuration file path. An explicit (non-empty)
// flag value is preferred, then the CONFIG_FILE environment variable,
// and at last the DefaultPath.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	return DefaultPath
}

func (c *Config) applyEnv() error {
	for name, dst := range map[string]**string{
		EnvStorageBackend: &c.Storage.Backend,
		EnvStoragePath:    &c.Storage.Path,
		EnvLogLevel:       &c.Logging.Level,
		EnvLogFormat:      &c.Logging.Format,
	} {
		if v, ok := os.LookupEnv(name); ok {
			*dst = &v
		}
	}
	if v, ok := os.LookupEnv(EnvNode); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvNode, err)
		}
		c.Dispatch.Node = &n
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("validating environment overrides: %w", err)
	}
	return nil
}
