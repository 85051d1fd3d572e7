// SPDX-License-Identifier: MIT

// Package table - CSV ingestion and export.
//
// Contract:
//   - The first record is the header. Headers are NFKC-normalized and trimmed;
//     a UTF-8 BOM on the first header is dropped.
//   - A column is numeric when every non-empty cell parses as float64; empty
//     numeric cells read as 0 (an unreported oxide). Other columns are kept as
//     text (sample names, notes) in Labels.
//   - Export writes text columns first, then numeric columns; NaN is written as
//     an empty cell.

package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	opReadCSV  = "ReadCSV"
	opWriteCSV = "WriteCSV"

	utf8BOM = "\uFEFF"
)

// TextColumn is a named column of strings carried alongside numeric tables
// (sample IDs, equation labels, pass flags, fail messages).
type TextColumn struct {
	Name   string
	Values []string
}

// Labels are the non-numeric columns found while reading a CSV, in file order.
type Labels []TextColumn

// Get returns the values of the named text column.
func (l Labels) Get(name string) ([]string, bool) {
	for _, c := range l {
		if c.Name == name {
			return c.Values, true
		}
	}

	return nil, false
}

// NormalizeHeader canonicalizes a column header: BOM removal, NFKC, trimming.
// Full-width "ＳｉＯ２_Amp" and "SiO2_Amp " both become "SiO2_Amp".
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, utf8BOM)
	h = norm.NFKC.String(h)

	return strings.TrimSpace(h)
}

// ReadCSV parses r into a numeric Table and its text Labels.
//
// Errors: ErrMalformedCSV (no header / ragged rows), ErrDuplicateColumn,
// ErrEmptyName, and reader errors.
func ReadCSV(r io.Reader) (*Table, Labels, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, nil, tableErrorf(opReadCSV, fmt.Errorf("%v: %w", perr, ErrMalformedCSV))
		}
		return nil, nil, tableErrorf(opReadCSV, err)
	}
	if len(records) == 0 {
		return nil, nil, tableErrorf(opReadCSV, ErrMalformedCSV)
	}

	header := make([]string, len(records[0]))
	for j, h := range records[0] {
		header[j] = NormalizeHeader(h)
	}
	body := records[1:]
	rows := len(body)

	t := New(rows)
	var labels Labels
	for j, name := range header {
		col, numeric := parseColumn(body, j)
		if numeric {
			if err = t.add(name, col); err != nil {
				return nil, nil, tableErrorf(opReadCSV, err)
			}
			continue
		}
		if name == "" {
			return nil, nil, tableErrorf(opReadCSV, ErrEmptyName)
		}
		text := make([]string, rows)
		for i := range body {
			text[i] = body[i][j]
		}
		labels = append(labels, TextColumn{Name: name, Values: text})
	}

	return t, labels, nil
}

// parseColumn converts column j to floats; numeric is false on the first
// non-empty cell that fails to parse.
func parseColumn(body [][]string, j int) (col []float64, numeric bool) {
	col = make([]float64, len(body))
	for i := range body {
		cell := strings.TrimSpace(body[i][j])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		col[i] = v
	}

	return col, true
}

// WriteCSV writes text columns followed by every numeric column of t.
//
// Errors: ErrNilTable, ErrLengthMismatch (text column of wrong length), writer errors.
func WriteCSV(w io.Writer, t *Table, text ...TextColumn) error {
	if t == nil {
		return tableErrorf(opWriteCSV, ErrNilTable)
	}
	for _, tc := range text {
		if len(tc.Values) != t.rows {
			return tableErrorf(opWriteCSV, fmt.Errorf("%q: %w", tc.Name, ErrLengthMismatch))
		}
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(text)+len(t.names))
	for _, tc := range text {
		header = append(header, tc.Name)
	}
	header = append(header, t.names...)
	if err := cw.Write(header); err != nil {
		return tableErrorf(opWriteCSV, err)
	}

	record := make([]string, len(header))
	for i := 0; i < t.rows; i++ {
		k := 0
		for _, tc := range text {
			record[k] = tc.Values[i]
			k++
		}
		for _, name := range t.names {
			record[k] = formatCell(t.cols[name][i])
			k++
		}
		if err := cw.Write(record); err != nil {
			return tableErrorf(opWriteCSV, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// formatCell renders v with the shortest round-trip representation; NaN is empty.
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
