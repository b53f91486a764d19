// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package excel renders a query.Report as an Excel workbook. The
// Summary sheet holds the report title, its metrics, and the detailed
// summary table. Breakdown, trend, and log tables get their own sheets.
package excel

import (
	"fmt"
	"io"

	"github.com/momeni/dispatchlog/pkg/adapter/export"
	"github.com/momeni/dispatchlog/pkg/core/query"
	"github.com/xuri/excelize/v2"
)

// SummarySheet is the name of the first sheet of the workbook.
const SummarySheet = "Summary"

type styles struct {
	title, header, total, number int
}

// Write renders the r report and writes the workbook to w.
func Write(w io.Writer, r query.Report) error {
	f, err := Build(r)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Build renders the r report as a new workbook. Caller must Close it.
func Build(r query.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fill(f, r); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fill(f *excelize.File, r query.Report) error {
	st, err := newStyles(f)
	if err != nil {
		return err
	}
	if err = f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err = f.SetCellValue(SummarySheet, "A1", r.Title); err != nil {
		return err
	}
	if err = f.SetCellStyle(SummarySheet, "A1", "A1", st.title); err != nil {
		return err
	}
	row, err := writeTable(f, st, SummarySheet, 3, export.Metrics(r))
	if err != nil {
		return err
	}
	if _, err = writeTable(f, st, SummarySheet, row+1, export.Summary(r)); err != nil {
		return err
	}
	tables := append(export.Breakdowns(r), export.Trend(r), export.Log(r))
	for _, t := range tables {
		if _, err = f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("adding %q sheet: %w", t.Name, err)
		}
		if _, err = writeTable(f, st, t.Name, 1, t); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return nil
}

func newStyles(f *excelize.File) (st styles, err error) {
	if st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return st, fmt.Errorf("title style: %w", err)
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type: "pattern", Pattern: 1, Color: []string{"F3F4F6"},
		},
	}); err != nil {
		return st, fmt.Errorf("header style: %w", err)
	}
	if st.total, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return st, fmt.Errorf("total style: %w", err)
	}
	fmtCode := "0.00"
	if st.number, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &fmtCode,
	}); err != nil {
		return st, fmt.Errorf("number style: %w", err)
	}
	return st, nil
}

// writeTable writes t into the sheet starting at the given row and
// returns the first row after the table.
func writeTable(
	f *excelize.File, st styles, sheet string, row int, t export.Table,
) (int, error) {
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := setRow(f, sheet, row, header, st.header); err != nil {
		return 0, err
	}
	row++
	for _, cells := range t.Rows {
		if err := setRow(f, sheet, row, cells, 0); err != nil {
			return 0, err
		}
		if err := styleNumbers(f, st, sheet, row, cells); err != nil {
			return 0, err
		}
		row++
	}
	if t.Footer != nil {
		if err := setRow(f, sheet, row, t.Footer, st.total); err != nil {
			return 0, err
		}
		row++
	}
	last, err := excelize.ColumnNumberToName(max(1, len(t.Header)))
	if err != nil {
		return 0, err
	}
	if err := f.SetColWidth(sheet, "A", last, 22); err != nil {
		return 0, err
	}
	return row, nil
}

func setRow(
	f *excelize.File, sheet string, row int, cells []any, style int,
) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
	}
	if style == 0 || len(cells) == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(cells), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, end, style)
}

func styleNumbers(
	f *excelize.File, st styles, sheet string, row int, cells []any,
) error {
	for i, c := range cells {
		if _, ok := c.(float64); !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.number); err != nil {
			return err
		}
	}
	return nil
}
