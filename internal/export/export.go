// Package export converts lazily-produced row sequences into CSV or
// XLSX downloads. Rows are pulled one at a time from upstream, so
// exporting a large tenant never holds the full result set in memory.
// XLSX is necessarily buffered into one workbook before the bytes go
// out — a valid workbook cannot be emitted as a true byte stream —
// but that buffering is bounded to the workbook, not a second
// materialized copy of the rows.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Sentinel fills absent values so every declared column is populated
// in every row; downstream parsers never see a ragged sheet.
const Sentinel = "N/A"

// Rows is a pull iterator over projected cells. done=true ends the
// stream; an error aborts it.
type Rows interface {
	Next() (cells []string, done bool, err error)
}

// RowFunc adapts a closure to Rows.
type RowFunc func() ([]string, bool, error)

func (f RowFunc) Next() ([]string, bool, error) { return f() }

// SliceRows adapts an in-memory slice, mostly for tests and small
// fixed exports.
func SliceRows(rows [][]string) Rows {
	i := 0
	return RowFunc(func() ([]string, bool, error) {
		if i >= len(rows) {
			return nil, true, nil
		}
		r := rows[i]
		i++
		return r, false, nil
	})
}

// ParseFormat normalizes the client's format selector, defaulting to
// CSV.
func ParseFormat(s string) Format {
	if Format(s) == FormatXLSX {
		return FormatXLSX
	}
	return FormatCSV
}

// ContentType is the download MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Stream writes one header row plus every upstream row to w in the
// requested format. Cancelling ctx stops the pull promptly. A
// mid-stream failure returns the error; bytes already flushed to w
// stay flushed, there is no rollback.
func Stream(ctx context.Context, w io.Writer, format Format, headers []string, rows Rows) error {
	if format == FormatXLSX {
		return streamXLSX(ctx, w, headers, rows)
	}
	return streamCSV(ctx, w, headers, rows)
}

func streamCSV(ctx context.Context, w io.Writer, headers []string, rows Rows) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		cells, done, err := rows.Next()
		if err != nil {
			return fmt.Errorf("fetch row: %w", err)
		}
		if done {
			break
		}
		if err := cw.Write(cells); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		// Push batches out to the client instead of buffering the lot.
		if n%500 == 499 {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func streamXLSX(ctx context.Context, w io.Writer, headers []string, rows Rows) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter("Sheet1")
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toAny(headers)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for rowIdx := 2; ; rowIdx++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		cells, done, err := rows.Next()
		if err != nil {
			return fmt.Errorf("fetch row: %w", err)
		}
		if done {
			break
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := sw.SetRow(cell, toAny(cells)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush workbook: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
