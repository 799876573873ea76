package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	corestore "github.com/skylark/droneops/core/store"
	infrastore "github.com/skylark/droneops/infra/store"
)

// seedFile maps a table name to its initial rows, column order matching
// the table schema.
type seedFile map[string][]corestore.Row

// seedStore loads the JSON seed file into every table that is still
// empty. Tables holding data are left untouched so restarts never
// clobber live records.
func seedStore(ctx context.Context, st corestore.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var seeds seedFile
	if err := json.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	for name, rows := range seeds {
		kind := corestore.Kind(name)
		cols := corestore.Columns(kind)
		if len(cols) == 0 {
			return fmt.Errorf("unknown table %q in %s", name, path)
		}
		for i, row := range rows {
			if len(row) != len(cols) {
				return fmt.Errorf("%s row %d: expected %d columns, got %d", kind, i, len(cols), len(row))
			}
		}
		existing, err := st.ReadAll(ctx, kind)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}
		switch s := st.(type) {
		case *infrastore.MemoryStore:
			s.Seed(kind, rows)
		case *infrastore.SQLiteStore:
			for _, row := range rows {
				if _, err := s.InsertRow(ctx, kind, row); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("store backend does not support seeding")
		}
	}
	return nil
}
