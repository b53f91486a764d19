// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func ExampleEntry() {
	e := model.Entry{
		ID:          1704456000000,
		Date:        model.NewDate(2024, time.January, 5),
		Contractor:  "Elsamy - السامي",
		License:     "6141-7523",
		Capacity:    47,
		Source:      "Rich MEG Tank",
		Destination: "Unico - يونيكو",
		Shift:       model.ShiftNightBeforeMidnight,
		Status:      model.StatusDispatched,
	}
	b, err := json.Marshal(e)
	fmt.Println(err)
	fmt.Println(string(b))
	// Output:
	// <nil>
	// {"id":1704456000000,"date":"05/01/2024","contractor":"Elsamy - السامي","license":"6141-7523","capacity":47,"source":"Rich MEG Tank","destination":"Unico - يونيكو","shift":"Night Shift - Before Midnight","status":"Dispatched"}
}

func TestEntryUnmarshalLenientCapacity(t *testing.T) {
	var entries []model.Entry
	err := json.Unmarshal([]byte(`[
		{"id": 1, "date": "5/1/2024", "capacity": "49.5", "shift": "Day Shift", "status": "Verified"},
		{"id": 2, "date": "06/01/2024", "capacity": null, "shift": ""},
		{"id": 3, "date": "07/01/2024", "capacity": "n/a"}
	]`), &entries)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, model.Capacity(49.5), entries[0].Capacity)
	assert.Equal(t, model.NewDate(2024, time.January, 5), entries[0].Date)
	assert.Equal(t, model.ShiftDay, entries[0].Shift)
	assert.Equal(t, model.StatusVerified, entries[0].Status)
	assert.Equal(t, model.Capacity(0), entries[1].Capacity)
	assert.Equal(t, model.ShiftInvalid, entries[1].Shift)
	assert.Equal(t, model.StatusInvalid, entries[2].Status)
	assert.Equal(t, model.Capacity(0), entries[2].Capacity)

	err = json.Unmarshal([]byte(`[{"shift": "Evening"}]`), &entries)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := model.ParseDate(" 1/2/2024 ")
	require.NoError(t, err)
	assert.Equal(t, "01/02/2024", d.String())
	assert.Equal(t, "01/02", d.Short())

	for _, s := range []string{"", "2024-02-01", "32/01/2024", "01/13/2024"} {
		_, err = model.ParseDate(s)
		assert.ErrorIs(t, err, model.ErrMalformedDate, "s=%q", s)
	}
	assert.Equal(t, "", model.Date{}.String())
}

func TestDateArithmetic(t *testing.T) {
	start := model.NewDate(2024, time.February, 27)
	end := start.AddDays(3)
	assert.Equal(t, "01/03/2024", end.String(), "leap year")
	assert.Equal(t, 3, start.DaysUntil(end))
	assert.Equal(t, -3, end.DaysUntil(start))
	assert.True(t, start.Before(end))
	assert.True(t, end.After(start))
	assert.True(t, model.DateOf(end.Time().Add(23*time.Hour)).Equal(end))
}

func TestShiftParse(t *testing.T) {
	for i, sh := range model.Shifts() {
		assert.Equal(t, i, sh.Index())
		got, err := model.ParseShift(sh.String())
		require.NoError(t, err)
		assert.Equal(t, sh, got)
		got, err = model.ParseShift(sh.Label())
		require.NoError(t, err)
		assert.Equal(t, sh, got)
	}
	_, err := model.ParseShift("Evening")
	assert.ErrorIs(t, err, model.ErrUnknownShift)
	assert.Equal(t, -1, model.ShiftInvalid.Index())
	assert.Error(t, model.Shift(7).Validate())
	assert.Equal(t, "Shift(7)", model.Shift(7).String())
}

func TestStatusToggle(t *testing.T) {
	assert.Equal(t, model.StatusVerified, model.StatusDispatched.Toggle())
	assert.Equal(t, model.StatusDispatched, model.StatusVerified.Toggle())
	assert.Equal(t, model.StatusDispatched, model.StatusInvalid.Toggle())
	_, err := model.ParseStatus("Pending")
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
	_, err = model.StatusInvalid.MarshalText()
	assert.Error(t, err)
}

func TestEntryPatch(t *testing.T) {
	e := model.Entry{ID: 9, Contractor: "A", Source: "S", Capacity: 10}
	assert.True(t, model.EntryPatch{}.IsEmpty())
	c, src, capacity := " B ", "T", 12.5
	p := model.EntryPatch{Contractor: &c, Source: &src, Capacity: &capacity}
	assert.False(t, p.IsEmpty())
	got := p.Apply(e)
	assert.Equal(t, model.EntryID(9), got.ID)
	assert.Equal(t, "B", got.Contractor)
	assert.Equal(t, "T", got.Source)
	assert.Equal(t, model.Capacity(12.5), got.Capacity)
	assert.Equal(t, "A", e.Contractor, "receiver is not changed")
}

func TestReferenceDataValidate(t *testing.T) {
	rd := model.DefaultReferenceData()
	require.NoError(t, rd.Validate())
	assert.Len(t, rd.Contractors, 3)
	assert.Len(t, rd.Sources, 5)

	var empty model.ReferenceData
	require.NoError(t, json.Unmarshal([]byte(`{"sources": []}`), &empty))
	assert.ErrorIs(t, empty.Validate(), model.ErrMissingContractors)
	empty = model.ReferenceData{}
	require.NoError(t, json.Unmarshal([]byte(`{"contractors": {}}`), &empty))
	assert.ErrorIs(t, empty.Validate(), model.ErrMissingSources)

	dup := model.ReferenceData{
		Contractors: map[string]model.Contractor{
			"A": {Trucks: []model.Truck{{License: "1"}, {License: "1"}}},
		},
		Sources: []string{},
	}
	assert.Error(t, dup.Validate())
}

func TestReferenceDataClone(t *testing.T) {
	rd := model.DefaultReferenceData()
	cc := rd.Clone()
	assert.Equal(t, rd, cc)

	const name = "Elsamy - السامي"
	c := cc.Contractors[name]
	*c.Trucks[0].Capacity = 1
	c.Destinations[0] = "changed"
	cc.Sources[0] = "changed"
	orig := rd.Contractors[name]
	assert.Equal(t, 47.0, *orig.Trucks[0].Capacity)
	assert.Equal(t, "Abu Madi - أبو ماضي", orig.Destinations[0])
	assert.Equal(t, "Off-spec Condensate Tank", rd.Sources[0])
}

func TestReferenceDataYAML(t *testing.T) {
	data := []byte(`
contractors:
  Acme:
    trucks:
      - license: "1-2"
        capacity: 40
      - license: "3-4"
    destinations: [North]
sources: [Tank]
`)
	var rd model.ReferenceData
	require.NoError(t, yaml.Unmarshal(data, &rd))
	require.NoError(t, rd.Validate())
	acme := rd.Contractors["Acme"]
	require.Len(t, acme.Trucks, 2)
	assert.Equal(t, 40.0, *acme.Trucks[0].Capacity)
	assert.Nil(t, acme.Trucks[1].Capacity)
	assert.True(t, acme.HasDestination("North"))
	assert.Equal(t, 1, acme.TruckIndex("3-4"))
	assert.Equal(t, -1, acme.TruckIndex("5-6"))
}
