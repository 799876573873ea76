package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	corestore "github.com/skylark/droneops/core/store"
)

// SQLiteStore persists the three record tables in a SQLite database. One
// table per kind, columns in the fixed schema order, rowid as the write
// location.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures the
// schema for every record kind.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	for _, kind := range corestore.Kinds() {
		cols := corestore.Columns(kind)
		defs := make([]string, len(cols))
		for i, c := range cols {
			defs[i] = fmt.Sprintf("%s TEXT NOT NULL DEFAULT ''", c)
		}
		schema := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", kind, strings.Join(defs, ", "))
		if _, err := db.Exec(schema); err != nil {
			if cerr := db.Close(); cerr != nil {
				return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
			}
			return nil, err
		}
	}
	return &SQLiteStore{db: db}, nil
}

// ReadAll returns every row of the kind ordered by rowid.
func (s *SQLiteStore) ReadAll(ctx context.Context, kind corestore.Kind) ([]corestore.Row, error) {
	cols := corestore.Columns(kind)
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(cols, ", "), kind)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []corestore.Row
	for rows.Next() {
		row, err := scanRow(rows, len(cols))
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// FindByKey locates the row whose key column matches key ignoring case and
// surrounding whitespace. The rowid is returned as the write location.
func (s *SQLiteStore) FindByKey(ctx context.Context, kind corestore.Kind, key string) (int64, corestore.Row, error) {
	cols := corestore.Columns(kind)
	query := fmt.Sprintf(
		"SELECT rowid, %s FROM %s WHERE lower(trim(%s)) = lower(trim(?)) LIMIT 1",
		strings.Join(cols, ", "), kind, cols[0],
	)
	dest := make([]any, len(cols)+1)
	var loc int64
	dest[0] = &loc
	vals := make([]sql.NullString, len(cols))
	for i := range vals {
		dest[i+1] = &vals[i]
	}
	err := s.db.QueryRowContext(ctx, query, key).Scan(dest...)
	if err == sql.ErrNoRows {
		return 0, nil, corestore.ErrNotFound
	}
	if err != nil {
		return 0, nil, err
	}
	row := make(corestore.Row, len(cols))
	for i, v := range vals {
		row[i] = v.String
	}
	return loc, row, nil
}

// WriteRow replaces the row at the given rowid. The update is idempotent
// per rowid and safe to retry.
func (s *SQLiteStore) WriteRow(ctx context.Context, kind corestore.Kind, loc int64, row corestore.Row) error {
	cols := corestore.Columns(kind)
	if len(row) != len(cols) {
		return fmt.Errorf("%s row has %d fields, schema has %d", kind, len(row), len(cols))
	}
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = ?", c)
		args = append(args, row[i])
	}
	args = append(args, loc)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE rowid = ?", kind, strings.Join(sets, ", "))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: no row at location %d", kind, loc)
	}
	return nil
}

// InsertRow appends a new row and returns its location. Used for seeding;
// the coordinator itself never creates records.
func (s *SQLiteStore) InsertRow(ctx context.Context, kind corestore.Kind, row corestore.Row) (int64, error) {
	cols := corestore.Columns(kind)
	if len(row) != len(cols) {
		return 0, fmt.Errorf("%s row has %d fields, schema has %d", kind, len(row), len(cols))
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	args := make([]any, len(row))
	for i, v := range row {
		args[i] = v
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", kind, strings.Join(cols, ", "), marks)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func scanRow(rows *sql.Rows, width int) (corestore.Row, error) {
	vals := make([]sql.NullString, width)
	dest := make([]any, width)
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	row := make(corestore.Row, width)
	for i, v := range vals {
		row[i] = v.String
	}
	return row, nil
}
