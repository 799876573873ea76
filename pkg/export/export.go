// Package export renders record tables to JSON or CSV for handoff to
// spreadsheets and reporting tools.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/skylark/droneops/core/store"
)

// WriteJSON writes every row of the kind to w as an array of objects
// keyed by column name.
func WriteJSON(ctx context.Context, w io.Writer, s store.Store, kind store.Kind) error {
	rows, err := s.ReadAll(ctx, kind)
	if err != nil {
		return err
	}
	cols := store.Columns(kind)
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]string, len(cols))
		for i, col := range cols {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteCSV writes every row of the kind to w with a header row of the
// column names.
func WriteCSV(ctx context.Context, w io.Writer, s store.Store, kind store.Kind) error {
	rows, err := s.ReadAll(ctx, kind)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(store.Columns(kind)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
