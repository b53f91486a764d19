// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package pdf renders a query.Report as an A4 PDF document with the
// report title, its metrics, the breakdown and trend tables, and the
// detailed summary table. The dispatch log itself is not included.
//
// Core PDF fonts are used, so texts are translated to the cp1252 code
// page and characters outside of it are not rendered faithfully.
package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/momeni/dispatchlog/pkg/adapter/export"
	"github.com/momeni/dispatchlog/pkg/core/query"
)

const (
	margin    = 15.0
	rowHeight = 6.0
	fontSize  = 9.0
)

// Write renders the r report and writes the document to w.
func Write(w io.Writer, r query.Report) error {
	doc := Build(r)
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// Build renders the r report as a new document. Rendering errors are
// kept in the document and reported by its Error and Output methods.
func Build(r query.Report) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.SetTitle(r.Title, true)
	doc.AliasNbPages("")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetFooterFunc(func() {
		doc.SetY(-margin + 5)
		doc.SetFont("Helvetica", "I", 8)
		doc.CellFormat(0, 5, fmt.Sprintf("Page %d/{nb}", doc.PageNo()),
			"", 0, "C", false, 0, "")
	})
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, tr(r.Title), "", 1, "L", false, 0, "")
	doc.Ln(4)

	tables := append(
		[]export.Table{export.Metrics(r)},
		export.Breakdowns(r)...,
	)
	tables = append(tables, export.Trend(r), export.Summary(r))
	for _, t := range tables {
		table(doc, tr, t)
	}
	return doc
}

func table(doc *fpdf.Fpdf, tr func(string) string, t export.Table) {
	pageW, _ := doc.GetPageSize()
	w := (pageW - 2*margin) / float64(max(1, len(t.Header)))

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr(t.Name), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", fontSize)
	doc.SetFillColor(243, 244, 246)
	for _, h := range t.Header {
		doc.CellFormat(w, rowHeight, fit(doc, tr(h), w), "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", fontSize)
	for _, cells := range t.Rows {
		row(doc, tr, w, cells)
	}
	if t.Footer != nil {
		doc.SetFont("Helvetica", "B", fontSize)
		row(doc, tr, w, t.Footer)
	}
	doc.Ln(6)
}

func row(doc *fpdf.Fpdf, tr func(string) string, w float64, cells []any) {
	for _, c := range cells {
		align := "L"
		switch c.(type) {
		case int, float64:
			align = "R"
		}
		s := fit(doc, tr(export.FormatCell(c)), w)
		doc.CellFormat(w, rowHeight, s, "1", 0, align, false, 0, "")
	}
	doc.Ln(-1)
}

// fit truncates s, so it fits in a cell with the w width.
func fit(doc *fpdf.Fpdf, s string, w float64) string {
	b := []byte(s) // translated to a single byte code page already
	for len(b) > 0 && doc.GetStringWidth(string(b)) > w-2 {
		b = b[:len(b)-1]
	}
	return string(b)
}
