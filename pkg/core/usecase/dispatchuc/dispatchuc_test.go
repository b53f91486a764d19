// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dispatchuc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/dispatchlog/pkg/adapter/kv/memkv"
	"github.com/momeni/dispatchlog/pkg/core/cerr"
	"github.com/momeni/dispatchlog/pkg/core/event"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/momeni/dispatchlog/pkg/core/query"
	"github.com/momeni/dispatchlog/pkg/core/usecase/dispatchuc"
	"github.com/stretchr/testify/suite"
)

const (
	elsamy = "Elsamy - السامي"
	petro  = "Petrotreatment - بتروتريتمنت"
	unico  = "Unico - يونيكو"
	rich   = "Rich MEG Tank"
)

// seqIDs returns the listed ids in order and then counts upwards.
type seqIDs struct {
	ids  []model.EntryID
	next model.EntryID
}

func (s *seqIDs) NextID() model.EntryID {
	if len(s.ids) > 0 {
		id := s.ids[0]
		s.ids = s.ids[1:]
		return id
	}
	s.next++
	return s.next
}

// flakyStore fails its writes while failWrites is set.
type flakyStore struct {
	*memkv.Store
	failWrites bool
}

var errDiskFull = errors.New("disk full")

func (fs *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if fs.failWrites {
		return errDiskFull
	}
	return fs.Store.Set(ctx, key, value)
}

func (fs *flakyStore) Remove(ctx context.Context, key string) error {
	if fs.failWrites {
		return errDiskFull
	}
	return fs.Store.Remove(ctx, key)
}

type DispatchUseCaseTestSuite struct {
	suite.Suite

	ctx   context.Context
	store *flakyStore
	ids   *seqIDs
	bus   *event.Bus
	uc    *dispatchuc.UseCase

	dataEvents, logEvents int
}

func TestDispatchUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(DispatchUseCaseTestSuite))
}

func (s *DispatchUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = &flakyStore{Store: memkv.New()}
	s.ids = &seqIDs{}
	s.bus = event.NewBus()
	s.dataEvents, s.logEvents = 0, 0
	s.bus.DataUpdated.Subscribe(func(event.DataUpdated) { s.dataEvents++ })
	s.bus.LogUpdated.Subscribe(func(event.LogUpdated) { s.logEvents++ })
	s.uc = s.newUseCase()
}

func (s *DispatchUseCaseTestSuite) newUseCase(
	opts ...dispatchuc.Option,
) *dispatchuc.UseCase {
	uc, err := dispatchuc.New(s.store, s.ids, s.bus, opts...)
	s.Require().NoError(err)
	s.Require().NoError(uc.Load(s.ctx))
	return uc
}

func (s *DispatchUseCaseTestSuite) resetEvents() {
	s.dataEvents, s.logEvents = 0, 0
}

func (s *DispatchUseCaseTestSuite) stored(key string, v any) bool {
	b, found, err := s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	if found {
		s.Require().NoError(json.Unmarshal(b, v))
	}
	return found
}

func day(d int) model.Date {
	return model.NewDate(2024, time.March, d)
}

func (s *DispatchUseCaseTestSuite) dispatch(
	contractor, license string, d int,
) model.Entry {
	e, err := s.uc.AddDispatchEntry(s.ctx, model.NewEntry{
		Date:        day(d),
		Contractor:  contractor,
		License:     license,
		Source:      rich,
		Destination: unico,
		Shift:       model.ShiftDay,
	})
	s.Require().NoError(err)
	return e
}

func (s *DispatchUseCaseTestSuite) TestLoadDefaults() {
	s.Equal([]string{
		"Elbassyouny - البسيوني", elsamy, petro,
	}, s.uc.Contractors())
	s.Len(s.uc.Sources(), 5)
	s.Empty(s.uc.Entries())
	s.NotNil(s.uc.Entries())
	s.Equal(1, s.dataEvents)
	s.Equal(1, s.logEvents)
	var rd model.ReferenceData
	s.False(s.stored(dispatchuc.DefaultDataKey, &rd), "defaults are not written")
}

func (s *DispatchUseCaseTestSuite) TestLoadMalformed() {
	r := s.Require()
	r.NoError(s.store.Set(s.ctx, dispatchuc.DefaultDataKey, []byte(`{"contractors":{}}`)))
	r.NoError(s.store.Set(s.ctx, dispatchuc.DefaultLogKey, []byte(`{not json`)))
	uc := s.newUseCase()
	s.Len(uc.Contractors(), 3, "missing sources fall back to defaults")
	s.Empty(uc.Entries())
}

func (s *DispatchUseCaseTestSuite) TestLoadNormalizesStatus() {
	r := s.Require()
	r.NoError(s.store.Set(s.ctx, dispatchuc.DefaultLogKey, []byte(
		`[{"id":7,"date":"01/03/2024","contractor":"A","capacity":"12"}]`,
	)))
	uc := s.newUseCase()
	e, found := uc.Entry(7)
	r.True(found)
	s.Equal(model.StatusDispatched, e.Status)
	s.Equal(model.Capacity(12), e.Capacity)
}

func (s *DispatchUseCaseTestSuite) TestLoadKeepsEntriesAroundBadOnes() {
	r := s.Require()
	r.NoError(s.store.Set(s.ctx, dispatchuc.DefaultLogKey, []byte(`[
		{"id":3,"date":"03/03/2024","contractor":"A","license":"a-1","capacity":10,"source":"S","destination":"D","shift":"Day Shift","status":"Verified"},
		{"id":2,"date":"02/03/2024","contractor":"A","license":"a-1","capacity":10,"source":"S","destination":"D","shift":"Morning","status":"Pending"},
		{"id":1,"date":"yesterday","contractor":"A","license":"a-1","capacity":10,"source":"S","destination":"D","shift":"Day Shift","status":"Verified"}
	]`)))
	s.uc = s.newUseCase()
	entries := s.uc.Entries()
	r.Len(entries, 2, "only the undecodable entry is skipped")
	s.Equal(model.StatusVerified, entries[0].Status)
	s.Equal(model.StatusDispatched, entries[1].Status)
	s.Equal(model.ShiftInvalid, entries[1].Shift)

	s.dispatch(elsamy, "6141-7523", 1)
	var stored []model.Entry
	r.True(s.stored(dispatchuc.DefaultLogKey, &stored))
	s.Len(stored, 3)
	s.Equal(model.EntryID(2), stored[2].ID)
}

func (s *DispatchUseCaseTestSuite) TestRoundTrip() {
	r := s.Require()
	r.NoError(s.uc.AddContractor(s.ctx, "  Acme  "))
	capacity := 33.0
	r.NoError(s.uc.AddTruck(s.ctx, "Acme", "A-1", &capacity))
	r.NoError(s.uc.AddDestination(s.ctx, "Acme", "North"))
	r.NoError(s.uc.AddSource(s.ctx, "Tank 9"))
	s.dispatch(elsamy, "6141-7523", 1)

	reloaded := s.newUseCase()
	s.Equal(s.uc.ReferenceData(), reloaded.ReferenceData())
	s.Equal(s.uc.Entries(), reloaded.Entries())
}

func (s *DispatchUseCaseTestSuite) TestContractorsReflectSurvivors() {
	r := s.Require()
	r.NoError(s.uc.AddContractor(s.ctx, "Zeta"))
	r.NoError(s.uc.AddContractor(s.ctx, "Alpha"))
	_, err := s.uc.DeleteContractor(s.ctx, petro)
	r.NoError(err)
	_, err = s.uc.DeleteContractor(s.ctx, "Zeta")
	r.NoError(err)
	s.Equal([]string{"Alpha", "Elbassyouny - البسيوني", elsamy}, s.uc.Contractors())

	err = s.uc.AddContractor(s.ctx, "Alpha")
	s.Equal(cerr.KindConflict, cerr.KindOf(err))
	s.ErrorIs(err, dispatchuc.ErrContractorExists)
	err = s.uc.AddContractor(s.ctx, "   ")
	s.Equal(cerr.KindValidation, cerr.KindOf(err))
	_, err = s.uc.DeleteContractor(s.ctx, "Zeta")
	s.Equal(cerr.KindNotFound, cerr.KindOf(err))
}

func (s *DispatchUseCaseTestSuite) TestRenameContractorCascades() {
	r := s.Require()
	s.dispatch(elsamy, "6141-7523", 1)
	s.dispatch(elsamy, "6536-8561", 2)
	other, err := s.uc.AddDispatchEntry(s.ctx, model.NewEntry{
		Date: day(2), Contractor: "Elbassyouny - البسيوني", License: "1859-2397",
		Source: rich, Destination: "Abu Madi - أبو ماضي", Shift: model.ShiftDay,
	})
	r.NoError(err)
	s.resetEvents()

	r.NoError(s.uc.RenameContractor(s.ctx, elsamy, "Elsamy Co"))
	s.Equal(1, s.dataEvents)
	s.Equal(1, s.logEvents)
	for _, e := range s.uc.Entries() {
		s.NotEqual(elsamy, e.Contractor)
	}
	s.Len(s.uc.FilteredLogs(query.Filter{Contractor: "Elsamy Co"}), 2)
	s.Len(s.uc.TrucksForContractor("Elsamy Co"), 2)
	s.Empty(s.uc.TrucksForContractor(elsamy))
	e, _ := s.uc.Entry(other.ID)
	s.Equal("Elbassyouny - البسيوني", e.Contractor)

	var log []model.Entry
	r.True(s.stored(dispatchuc.DefaultLogKey, &log))
	s.Equal(s.uc.Entries(), log)

	err = s.uc.RenameContractor(s.ctx, "Elsamy Co", petro)
	s.Equal(cerr.KindConflict, cerr.KindOf(err))
	err = s.uc.RenameContractor(s.ctx, elsamy, "X")
	s.Equal(cerr.KindNotFound, cerr.KindOf(err))
}

func (s *DispatchUseCaseTestSuite) TestDeleteContractorCascades() {
	r := s.Require()
	s.dispatch(elsamy, "6141-7523", 1)
	capacity := 20.0
	_, err := s.uc.AddDispatchEntry(s.ctx, model.NewEntry{
		Date: day(1), Contractor: petro, License: "1954-5398",
		Capacity: &capacity, Source: rich, Destination: unico,
		Shift: model.ShiftNightAfterMidnight,
	})
	r.NoError(err)
	s.dispatch(elsamy, "6536-8561", 2)
	s.resetEvents()

	removed, err := s.uc.DeleteContractor(s.ctx, elsamy)
	r.NoError(err)
	s.Equal(2, removed)
	s.Len(s.uc.Entries(), 1)
	s.Equal(petro, s.uc.Entries()[0].Contractor)
	s.Equal(1, s.dataEvents)
	s.Equal(1, s.logEvents)

	removed, err = s.uc.DeleteContractor(s.ctx, "Elbassyouny - البسيوني")
	r.NoError(err)
	s.Zero(removed)
	s.Equal(1, s.logEvents, "log is not changed")
}

func (s *DispatchUseCaseTestSuite) TestTrucks() {
	r := s.Require()
	capacity := 40.0
	r.NoError(s.uc.AddTruck(s.ctx, petro, "9999-1111", &capacity))
	s.Equal(40.0, *s.uc.CapacityForTruck(petro, "9999-1111"))
	s.Nil(s.uc.CapacityForTruck(petro, "1954-5398"))
	s.Nil(s.uc.CapacityForTruck(petro, "missing"))

	err := s.uc.AddTruck(s.ctx, petro, "9999-1111", nil)
	s.ErrorIs(err, dispatchuc.ErrTruckExists)
	neg := -1.0
	err = s.uc.AddTruck(s.ctx, petro, "8888", &neg)
	s.Equal(cerr.KindValidation, cerr.KindOf(err))
	err = s.uc.AddTruck(s.ctx, "nobody", "8888", nil)
	s.Equal(cerr.KindNotFound, cerr.KindOf(err))

	newCap := 44.0
	found, err := s.uc.UpdateTruck(s.ctx, petro, "9999-1111", &newCap)
	r.NoError(err)
	s.True(found)
	s.Equal(44.0, *s.uc.CapacityForTruck(petro, "9999-1111"))
	found, err = s.uc.UpdateTruck(s.ctx, petro, "missing", &newCap)
	r.NoError(err)
	s.False(found)

	s.resetEvents()
	found, err = s.uc.DeleteTruck(s.ctx, petro, "missing")
	r.NoError(err)
	s.False(found)
	s.Zero(s.dataEvents, "no-op deletes are not published")
	found, err = s.uc.DeleteTruck(s.ctx, petro, "9999-1111")
	r.NoError(err)
	s.True(found)
	s.Len(s.uc.TrucksForContractor(petro), 3)
	s.Equal(1, s.dataEvents)
}

func (s *DispatchUseCaseTestSuite) TestSourcesAndDestinations() {
	r := s.Require()
	r.NoError(s.uc.AddSource(s.ctx, "Tank 9"))
	s.ErrorIs(s.uc.AddSource(s.ctx, "Tank 9"), dispatchuc.ErrSourceExists)
	found, err := s.uc.DeleteSource(s.ctx, rich)
	r.NoError(err)
	s.True(found)
	found, err = s.uc.DeleteSource(s.ctx, rich)
	r.NoError(err)
	s.False(found)
	s.Equal("Tank 9", s.uc.Sources()[len(s.uc.Sources())-1])

	r.NoError(s.uc.AddDestination(s.ctx, petro, "North"))
	err = s.uc.AddDestination(s.ctx, petro, "North")
	s.ErrorIs(err, dispatchuc.ErrDestinationExists)
	s.Equal([]string{unico, "North"}, s.uc.DestinationsForContractor(petro))
	found, err = s.uc.DeleteDestination(s.ctx, petro, unico)
	r.NoError(err)
	s.True(found)

	all := s.uc.AllDestinations()
	s.Equal([]string{
		"Abu Madi - أبو ماضي", "Elaalamya - العالمية", "Eldawlya - الدولية",
		"North", "Ultra Extract - ألترا اكستراكت", unico,
	}, all)
}

func (s *DispatchUseCaseTestSuite) TestAccessorsReturnCopies() {
	srcs := s.uc.Sources()
	srcs[0] = "changed"
	s.NotEqual("changed", s.uc.Sources()[0])

	trucks := s.uc.TrucksForContractor(elsamy)
	*trucks[0].Capacity = 1
	s.Equal(47.0, *s.uc.CapacityForTruck(elsamy, "6141-7523"))

	rd := s.uc.ReferenceData()
	delete(rd.Contractors, elsamy)
	s.Len(s.uc.Contractors(), 3)

	s.dispatch(elsamy, "6141-7523", 1)
	entries := s.uc.Entries()
	entries[0].Contractor = "changed"
	s.Equal(elsamy, s.uc.Entries()[0].Contractor)
}

func (s *DispatchUseCaseTestSuite) TestAddDispatchEntry() {
	r := s.Require()
	s.ids.ids = []model.EntryID{5}
	first := s.dispatch(elsamy, "6141-7523", 1)
	s.Equal(model.EntryID(5), first.ID)
	s.Equal(model.Capacity(47), first.Capacity, "taken from the truck")
	s.Equal(model.StatusDispatched, first.Status)

	s.ids.ids = []model.EntryID{5, 5, 6}
	second := s.dispatch(elsamy, "6536-8561", 1)
	s.Equal(model.EntryID(6), second.ID, "colliding ids are redrawn")

	entries := s.uc.FilteredLogs(query.Filter{})
	r.Len(entries, 2)
	s.Equal(second.ID, entries[0].ID, "new entries are prepended")
	s.Equal(2, s.logEvents-1)

	var log []model.Entry
	r.True(s.stored(dispatchuc.DefaultLogKey, &log))
	s.Equal(entries, log)
}

func (s *DispatchUseCaseTestSuite) TestAddDispatchEntryValidation() {
	_, err := s.uc.AddDispatchEntry(s.ctx, model.NewEntry{
		Contractor: elsamy, License: "6141-7523",
		Source: unico, Destination: unico,
	})
	s.Equal(cerr.KindValidation, cerr.KindOf(err))
	var fe cerr.FieldErrors
	s.Require().ErrorAs(err, &fe)
	s.Contains(fe, "Date")
	s.Contains(fe, "Destination")
	s.Contains(fe, "Shift")

	base := model.NewEntry{
		Date: day(1), Contractor: petro, License: "1954-5398",
		Source: rich, Destination: unico, Shift: model.ShiftDay,
	}
	_, err = s.uc.AddDispatchEntry(s.ctx, base)
	s.ErrorIs(err, dispatchuc.ErrCapacityRequired)

	zero := 0.0
	bad := base
	bad.Capacity = &zero
	_, err = s.uc.AddDispatchEntry(s.ctx, bad)
	s.Equal(cerr.KindValidation, cerr.KindOf(err))

	bad = base
	bad.License = "6141-7523"
	_, err = s.uc.AddDispatchEntry(s.ctx, bad)
	s.ErrorIs(err, dispatchuc.ErrTruckNotFound)

	bad = base
	bad.Destination = "Elaalamya - العالمية"
	_, err = s.uc.AddDispatchEntry(s.ctx, bad)
	s.ErrorIs(err, dispatchuc.ErrDestinationNotFound)

	bad = base
	bad.Source = "Nowhere"
	_, err = s.uc.AddDispatchEntry(s.ctx, bad)
	s.ErrorIs(err, dispatchuc.ErrSourceNotFound)

	s.Empty(s.uc.Entries())
	s.Equal(1, s.logEvents, "only the load was published")
}

func (s *DispatchUseCaseTestSuite) TestEntryUpdates() {
	r := s.Require()
	e := s.dispatch(elsamy, "6141-7523", 1)

	found, err := s.uc.ToggleEntryStatus(s.ctx, e.ID)
	r.NoError(err)
	s.True(found)
	got, _ := s.uc.Entry(e.ID)
	s.Equal(model.StatusVerified, got.Status)

	found, err = s.uc.UpdateEntryStatus(s.ctx, e.ID, model.StatusDispatched)
	r.NoError(err)
	s.True(found)
	_, err = s.uc.UpdateEntryStatus(s.ctx, e.ID, model.StatusInvalid)
	s.Equal(cerr.KindValidation, cerr.KindOf(err))

	dst, capacity := "Somewhere", 12.0
	found, err = s.uc.UpdateLogEntry(s.ctx, e.ID, model.EntryPatch{
		Destination: &dst, Capacity: &capacity,
	})
	r.NoError(err)
	s.True(found)
	got, _ = s.uc.Entry(e.ID)
	s.Equal("Somewhere", got.Destination)
	s.Equal(model.Capacity(12), got.Capacity)
	s.Equal(e.ID, got.ID)

	src := "Somewhere"
	_, err = s.uc.UpdateLogEntry(s.ctx, e.ID, model.EntryPatch{Source: &src})
	s.Equal(cerr.KindValidation, cerr.KindOf(err))
	got, _ = s.uc.Entry(e.ID)
	s.Equal(rich, got.Source, "invalid edits are not applied")

	for _, id := range []model.EntryID{e.ID + 100} {
		found, err = s.uc.ToggleEntryStatus(s.ctx, id)
		s.NoError(err)
		s.False(found)
		found, err = s.uc.UpdateLogEntry(s.ctx, id, model.EntryPatch{Source: &src})
		s.NoError(err)
		s.False(found)
		found, err = s.uc.DeleteLogEntry(s.ctx, id)
		s.NoError(err)
		s.False(found)
	}

	found, err = s.uc.DeleteLogEntry(s.ctx, e.ID)
	r.NoError(err)
	s.True(found)
	s.Empty(s.uc.Entries())
}

func (s *DispatchUseCaseTestSuite) TestClearLog() {
	r := s.Require()
	s.dispatch(elsamy, "6141-7523", 1)
	s.resetEvents()
	r.NoError(s.uc.ClearLog(s.ctx))
	s.Empty(s.uc.Entries())
	s.Equal(1, s.logEvents)
	var log []model.Entry
	s.False(s.stored(dispatchuc.DefaultLogKey, &log), "key is removed")
}

func (s *DispatchUseCaseTestSuite) TestStorageFailureRollsBack() {
	r := s.Require()
	s.dispatch(elsamy, "6141-7523", 1)
	before := s.uc.Entries()
	s.resetEvents()
	s.store.failWrites = true

	_, err := s.uc.DeleteContractor(s.ctx, elsamy)
	s.Equal(cerr.KindStorage, cerr.KindOf(err))
	s.ErrorIs(err, errDiskFull)
	s.Len(s.uc.Contractors(), 3)
	s.Equal(before, s.uc.Entries())

	_, err = s.uc.AddDispatchEntry(s.ctx, model.NewEntry{
		Date: day(2), Contractor: elsamy, License: "6141-7523",
		Source: rich, Destination: unico, Shift: model.ShiftDay,
	})
	s.Equal(cerr.KindStorage, cerr.KindOf(err))
	s.Equal(before, s.uc.Entries())
	s.Equal(cerr.KindStorage, cerr.KindOf(s.uc.ClearLog(s.ctx)))
	s.Zero(s.dataEvents)
	s.Zero(s.logEvents)

	s.store.failWrites = false
	r.NoError(s.uc.AddContractor(s.ctx, "Acme"))
	s.Equal(1, s.dataEvents)
}

func (s *DispatchUseCaseTestSuite) TestSubscribersPullSnapshots() {
	var seen []int
	unsubscribe := s.bus.LogUpdated.Subscribe(func(event.LogUpdated) {
		seen = append(seen, len(s.uc.Entries()))
	})
	defer unsubscribe()
	s.dispatch(elsamy, "6141-7523", 1)
	s.dispatch(elsamy, "6141-7523", 2)
	s.Equal([]int{1, 2}, seen)
}

func TestOptions(t *testing.T) {
	ctx := context.Background()
	store := memkv.New()
	seed := model.ReferenceData{
		Contractors: map[string]model.Contractor{"Seed": {}},
		Sources:     []string{"S"},
	}
	uc, err := dispatchuc.New(
		store, &seqIDs{}, event.NewBus(),
		dispatchuc.WithDefaultReferenceData(seed),
		dispatchuc.WithStorageKeys("data", "log"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err = uc.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if got := uc.Contractors(); len(got) != 1 || got[0] != "Seed" {
		t.Fatalf("unexpected contractors: %v", got)
	}
	if err = uc.AddSource(ctx, "T"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := store.Get(ctx, "data"); !found {
		t.Fatal("data key is not written")
	}

	_, err = dispatchuc.New(store, &seqIDs{}, event.NewBus(),
		dispatchuc.WithStorageKeys("same", "same"),
	)
	if err == nil {
		t.Fatal("equal keys must be rejected")
	}
	_, err = dispatchuc.New(store, &seqIDs{}, event.NewBus(),
		dispatchuc.WithDefaultReferenceData(model.ReferenceData{}),
	)
	if err == nil {
		t.Fatal("malformed defaults must be rejected")
	}
}
