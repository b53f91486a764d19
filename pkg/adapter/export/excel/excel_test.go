// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package excel_test

import (
	"bytes"
	"testing"

	"github.com/momeni/dispatchlog/pkg/adapter/export/excel"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/momeni/dispatchlog/pkg/core/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite(t *testing.T) {
	d1, err := model.ParseDate("01/03/2024")
	require.NoError(t, err)
	d2 := d1.AddDays(2)
	entries := []model.Entry{
		{ID: 2, Date: d2, Contractor: "Acme", License: "A-1", Capacity: 12.5, Source: "Quarry", Destination: "North", Shift: model.ShiftDay},
		{ID: 1, Date: d1, Contractor: "Acme", License: "A-1", Capacity: 12.5, Source: "Quarry", Destination: "South", Shift: model.ShiftDay},
	}
	r := query.BuildReport(entries, d1, d2)

	var buf bytes.Buffer
	require.NoError(t, excel.Write(&buf, r))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Summary", "By Source", "By Destination", "By Contractor",
		"Trend", "Log",
	}, f.GetSheetList())

	title, err := f.GetCellValue(excel.SummarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Report from 01/03/2024 to 03/03/2024", title)

	rows, err := f.GetRows("By Source")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Source", "Trips", "Capacity (m³)"},
		{"Quarry", "2", "25.00"},
		{"Total", "2", "25"},
	}, rows)

	rows, err = f.GetRows("Trend")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "01/03", rows[1][0])
	assert.Equal(t, "02/03", rows[2][0])

	rows, err = f.GetRows("Log")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "South", rows[2][5])
}
