// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/momeni/dispatchlog/pkg/adapter/db/sqlite/itemsrp"
	"github.com/momeni/dispatchlog/pkg/adapter/idgen"
	"github.com/momeni/dispatchlog/pkg/adapter/kv/badgerkv"
	"github.com/momeni/dispatchlog/pkg/adapter/kv/memkv"
	"github.com/momeni/dispatchlog/pkg/core/event"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/momeni/dispatchlog/pkg/core/repo"
	"github.com/momeni/dispatchlog/pkg/core/usecase/dispatchuc"
	"gopkg.in/yaml.v3"
)

// OpenStore opens the configured storage backend.
func (c *Config) OpenStore(ctx context.Context) (repo.Store, error) {
	path := *c.Storage.Path
	switch *c.Storage.Backend {
	case BackendMemory:
		return memkv.New(), nil
	case BackendSQLite:
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("creating %q: %w", path, err)
		}
		slow := time.Duration(*c.Storage.SlowThreshold)
		return itemsrp.Open(ctx, path, slow)
	default:
		return badgerkv.Open(path)
	}
}

// IDGenerator creates the entry ids generator for the configured node.
func (c *Config) IDGenerator() (repo.IDGenerator, error) {
	return idgen.New(*c.Dispatch.Node)
}

// SeedData reads the reference data seed file, if it is configured.
// A nil ReferenceData is returned if no seed file is configured.
func (c *Config) SeedData() (*model.ReferenceData, error) {
	if c.Dispatch.SeedFile == nil {
		return nil, nil
	}
	data, err := os.ReadFile(*c.Dispatch.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	rd := &model.ReferenceData{}
	if err := yaml.Unmarshal(data, rd); err != nil {
		return nil, fmt.Errorf("unmarshalling seed file: %w", err)
	}
	return rd, nil
}

// NewDispatchUseCase opens the configured storage and instantiates a
// dispatch use case over it, publishing its notifications on bus.
// The returned use case is not loaded yet and its Close method closes
// the storage too.
func (c *Config) NewDispatchUseCase(
	ctx context.Context, bus *event.Bus,
) (*dispatchuc.UseCase, error) {
	ids, err := c.IDGenerator()
	if err != nil {
		return nil, err
	}
	opts := make([]dispatchuc.Option, 0, 2)
	rd, err := c.SeedData()
	if err != nil {
		return nil, err
	}
	if rd != nil {
		opts = append(opts, dispatchuc.WithDefaultReferenceData(*rd))
	}
	if c.Dispatch.DataKey != nil {
		opts = append(opts, dispatchuc.WithStorageKeys(
			*c.Dispatch.DataKey, *c.Dispatch.LogKey,
		))
	}
	s, err := c.OpenStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", *c.Storage.Backend, err)
	}
	uc, err := dispatchuc.New(s, ids, bus, opts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	return uc, nil
}

// SlogLevel parses the logging level.
func (l Logging) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == nil {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(strings.ToUpper(*l.Level)))
	return lvl, err
}

// NewLogger creates a logger which writes to w with the configured
// level and format. The attrs are added to all records.
func (c *Config) NewLogger(w io.Writer, attrs ...slog.Attr) *slog.Logger {
	lvl, _ := c.Logging.SlogLevel() // validated already
	opts := &slog.HandlerOptions{AddSource: lvl == slog.LevelDebug, Level: lvl}
	var h slog.Handler
	if *c.Logging.Format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h.WithAttrs(attrs))
}
