// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dispatchuc contains the dispatch UseCase which owns the
// reference data (contractors, their trucks and destinations, and the
// source locations) and the dispatch log.
//
// Every mutating operation persists the affected collection in the
// repo.Store before returning and then publishes a payload-less
// notification on the event.Bus. Subscribers are expected to pull a
// fresh snapshot using the read accessors, which always return copies
// that callers may keep or modify freely.
package dispatchuc

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/momeni/dispatchlog/pkg/core/cerr"
	"github.com/momeni/dispatchlog/pkg/core/event"
	"github.com/momeni/dispatchlog/pkg/core/log"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/momeni/dispatchlog/pkg/core/repo"
)

// Default storage keys of the reference data and dispatch log.
const (
	DefaultDataKey = "appData"
	DefaultLogKey  = "dispatchLog"
)

// UseCase represents the dispatch use case. It holds the storage and
// id generator ports, the event bus, and the current state.
// It is safe to be used concurrently, although the expected usage is
// a single interactive client.
type UseCase struct {
	store    repo.Store
	ids      repo.IDGenerator
	bus      *event.Bus
	validate *validator.Validate

	dataKey, logKey string
	defaults        *model.ReferenceData

	mu sync.Mutex
	st state
}

type state struct {
	data model.ReferenceData
	log  []model.Entry // newest first
}

func (st *state) clone() state {
	return state{data: st.data.Clone(), log: slices.Clone(st.log)}
}

// change tells which collections were changed by a mutation.
type change struct {
	data     bool
	log      bool
	clearLog bool // log is emptied and its key must be removed
}

// New instantiates a dispatch use case. The returned UseCase holds
// the default reference data and an empty log until Load is called.
// Required parameters are passed individually, while optional ones
// are passed as a series of functional options.
func New(
	s repo.Store, ids repo.IDGenerator, bus *event.Bus, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		store:    s,
		ids:      ids,
		bus:      bus,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.dataKey == "" {
		uc.dataKey, uc.logKey = DefaultDataKey, DefaultLogKey
	}
	if uc.defaults == nil {
		rd := model.DefaultReferenceData()
		uc.defaults = &rd
	}
	uc.st = state{data: uc.defaults.Clone(), log: []model.Entry{}}
	return uc, nil
}

// Load reads the reference data and the dispatch log from the storage.
// Absent or malformed reference data is replaced by the default
// dataset and an absent or malformed log is replaced by an empty log.
// Nothing is written back until the next mutation. Both notifications
// are published after a successful load.
// Only failures of the storage itself are returned, as cerr.Storage
// errors.
func (uc *UseCase) Load(ctx context.Context) error {
	uc.mu.Lock()
	data, err := uc.loadData(ctx)
	if err != nil {
		uc.mu.Unlock()
		return err
	}
	entries, err := uc.loadLog(ctx)
	if err != nil {
		uc.mu.Unlock()
		return err
	}
	uc.st = state{data: data, log: entries}
	uc.mu.Unlock()
	log.Debug(
		ctx, "dispatch state is loaded",
		log.Count("contractors", len(data.Contractors)),
		log.Count("entries", len(entries)),
	)
	uc.publish(change{data: true, log: true})
	return nil
}

func (uc *UseCase) loadData(ctx context.Context) (model.ReferenceData, error) {
	b, found, err := uc.store.Get(ctx, uc.dataKey)
	if err != nil {
		return model.ReferenceData{}, cerr.Storage(
			fmt.Errorf("reading %q: %w", uc.dataKey, err),
		)
	}
	if !found {
		return uc.defaults.Clone(), nil
	}
	var rd model.ReferenceData
	if err = json.Unmarshal(b, &rd); err == nil {
		err = rd.Validate()
	}
	if err != nil {
		log.Warn(
			ctx, "malformed reference data is replaced by defaults",
			log.StorageKey(uc.dataKey), log.Err("err", err),
		)
		return uc.defaults.Clone(), nil
	}
	return rd.Clone(), nil
}

func (uc *UseCase) loadLog(ctx context.Context) ([]model.Entry, error) {
	b, found, err := uc.store.Get(ctx, uc.logKey)
	if err != nil {
		return nil, cerr.Storage(
			fmt.Errorf("reading %q: %w", uc.logKey, err),
		)
	}
	if !found {
		return []model.Entry{}, nil
	}
	var raws []json.RawMessage
	if err = json.Unmarshal(b, &raws); err != nil {
		log.Warn(
			ctx, "malformed dispatch log is replaced by an empty log",
			log.StorageKey(uc.logKey), log.Err("err", err),
		)
		return []model.Entry{}, nil
	}
	entries := make([]model.Entry, 0, len(raws))
	for i, raw := range raws {
		e, err := decodeEntry(raw)
		if err != nil {
			log.Warn(
				ctx, "malformed dispatch entry is skipped",
				log.StorageKey(uc.logKey), slog.Int("index", i),
				log.Err("err", err),
			)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// storedEntry is the persisted form of a model.Entry which keeps its
// shift and status as plain strings, so unknown values can be
// normalized instead of failing the whole log.
type storedEntry struct {
	ID          model.EntryID  `json:"id"`
	Date        model.Date     `json:"date"`
	Contractor  string         `json:"contractor"`
	License     string         `json:"license"`
	Capacity    model.Capacity `json:"capacity"`
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	Shift       string         `json:"shift"`
	Status      string         `json:"status"`
}

// decodeEntry decodes one stored log entry. An unknown shift becomes
// model.ShiftInvalid and an unknown status becomes the initial one.
func decodeEntry(raw []byte) (model.Entry, error) {
	var se storedEntry
	if err := json.Unmarshal(raw, &se); err != nil {
		return model.Entry{}, err
	}
	e := model.Entry{
		ID:          se.ID,
		Date:        se.Date,
		Contractor:  se.Contractor,
		License:     se.License,
		Capacity:    se.Capacity,
		Source:      se.Source,
		Destination: se.Destination,
	}
	e.Shift, _ = model.ParseShift(se.Shift)
	var err error
	if e.Status, err = model.ParseStatus(se.Status); err != nil {
		e.Status = model.StatusDispatched
	}
	return e, nil
}

// Close closes the underlying store. The UseCase may not be used
// afterwards. All mutations are persisted synchronously, so there is
// nothing to be flushed.
func (uc *UseCase) Close() error {
	return uc.store.Close()
}

// mutate runs f on the current state while holding the lock, persists
// the changed collections, and publishes their notifications after
// releasing the lock. If f or the persistence fails, the state is
// restored, so the memory and storage contents never diverge.
func (uc *UseCase) mutate(
	ctx context.Context, f func(st *state) (change, error),
) error {
	uc.mu.Lock()
	backup := uc.st.clone()
	ch, err := f(&uc.st)
	if err == nil {
		err = uc.persist(ctx, ch, backup)
	}
	if err != nil {
		uc.st = backup
		uc.mu.Unlock()
		return err
	}
	uc.mu.Unlock()
	uc.publish(ch)
	return nil
}

func (uc *UseCase) persist(ctx context.Context, ch change, backup state) error {
	if ch.data {
		if err := uc.save(ctx, uc.dataKey, uc.st.data); err != nil {
			return err
		}
	}
	if !ch.log {
		return nil
	}
	var err error
	if ch.clearLog {
		if err = uc.store.Remove(ctx, uc.logKey); err != nil {
			err = cerr.Storage(fmt.Errorf("removing %q: %w", uc.logKey, err))
		}
	} else {
		err = uc.save(ctx, uc.logKey, uc.st.log)
	}
	if err != nil && ch.data {
		// reference data was written already and must be reverted
		if err2 := uc.save(ctx, uc.dataKey, backup.data); err2 != nil {
			log.Error(
				ctx, "reverting reference data failed",
				log.StorageKey(uc.dataKey), log.Err("err", err2),
			)
		}
	}
	return err
}

func (uc *UseCase) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	if err = uc.store.Set(ctx, key, b); err != nil {
		return cerr.Storage(fmt.Errorf("writing %q: %w", key, err))
	}
	return nil
}

func (uc *UseCase) publish(ch change) {
	if ch.data {
		uc.bus.DataUpdated.Publish(event.DataUpdated{})
	}
	if ch.log {
		uc.bus.LogUpdated.Publish(event.LogUpdated{})
	}
}

// read runs f on the current state while holding the lock.
func (uc *UseCase) read(f func(st *state)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	f(&uc.st)
}
