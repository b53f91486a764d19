// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package export_test

import (
	"testing"

	"github.com/momeni/dispatchlog/pkg/adapter/export"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/momeni/dispatchlog/pkg/core/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestTables(t *testing.T) {
	d := date(t, "05/01/2024")
	entries := []model.Entry{
		{ID: 3, Date: d, Contractor: "B", License: "b1", Capacity: 10, Source: "S1", Destination: "D1", Shift: model.ShiftDay, Status: model.StatusVerified},
		{ID: 2, Date: d, Contractor: "A", License: "a1", Capacity: 7.5, Source: "S1", Destination: "D2", Shift: model.ShiftDay, Status: model.StatusDispatched},
		{ID: 1, Date: d, Contractor: "A", License: "a1", Capacity: 7.5, Source: "S1", Destination: "D2", Shift: model.ShiftNightAfterMidnight, Status: model.StatusDispatched},
	}
	r := query.BuildReport(entries, d, d)
	assert.Equal(t, "Report_for_05-01-2024.pdf", export.FileName(r, "pdf"))

	s := export.Summary(r)
	assert.Equal(t, [][]any{
		{"A", "S1", "D2", 2, 15.0},
		{"B", "S1", "D1", 1, 10.0},
	}, s.Rows)
	assert.Equal(t, []any{"Total", "", "", 3, 25.0}, s.Footer)

	b := export.Breakdowns(r)
	require.Len(t, b, 3)
	assert.Equal(t, "By Destination", b[1].Name)
	assert.Equal(t, [][]any{{"D2", 2, 15.0}, {"D1", 1, 10.0}}, b[1].Rows)
	assert.Equal(t, []any{"Total", 3, 25.0}, b[1].Footer)

	tr := export.Trend(r)
	assert.Equal(t, "Shift", tr.Header[0])
	assert.Len(t, tr.Rows, 3)

	l := export.Log(r)
	require.Len(t, l.Rows, 3)
	assert.Equal(t, "Verified", l.Rows[0][7])

	m := export.Metrics(r)
	assert.Equal(t, []any{"Average Trips per Day", 3.0}, m.Rows[3])
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "12.50", export.FormatCell(12.5))
	assert.Equal(t, "3", export.FormatCell(3))
	assert.Equal(t, "x", export.FormatCell("x"))
	assert.Equal(t, "", export.FormatCell(nil))
}
