package domain

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize cuts a raw FARS export down to its data table and rewrites it as
// comma-separated text. The table starts at the row whose first cell is
// [Sentinel] and ends before the first later line without a tab. Cells are
// trimmed; a cell containing a comma is quoted rather than split.
func Normalize(raw string) (string, error) {
	// NFKC folds the no-break spaces the query pages emit into plain spaces.
	text := norm.NFKC.String(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if firstCell(line) == Sentinel {
			start = i
			break
		}
	}
	if start < 0 {
		return "", fmt.Errorf("%w: sentinel row %q not found", ErrMalformedInput, Sentinel)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := 0
	for _, line := range lines[start:] {
		if !strings.Contains(line, "\t") {
			break
		}
		rows++
		cells := strings.Split(line, "\t")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if err := w.Write(cells); err != nil {
			return "", fmt.Errorf("rewrite table: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("rewrite table: %w", err)
	}
	if rows == 0 {
		return "", fmt.Errorf("%w: sentinel row %q is not tab-delimited", ErrMalformedInput, Sentinel)
	}

	return strings.TrimSpace(buf.String()), nil
}

// ParseRows reads normalized text into rows of cells. Rows may differ in
// length; column counts are checked by the mappers.
func ParseRows(normalized string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(normalized))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return rows, nil
}

func firstCell(line string) string {
	cell, _, _ := strings.Cut(line, "\t")
	return strings.TrimSpace(cell)
}
