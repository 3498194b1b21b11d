package state

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/leapstack-labs/leapcalc/pkg/expr"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite checkpoint store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		// WAL keeps concurrent CLI invocations from blocking each other.
		// modernc's driver takes pragmas as _pragma=name(value) pairs.
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema initializes the database schema.
func (s *SQLiteStore) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SaveCheckpoint persists bindings under a name. A checkpoint saved
// under an existing name replaces it (latest wins).
func (s *SQLiteStore) SaveCheckpoint(name string, bindings map[string]expr.Value) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	raw, err := yaml.Marshal(bindings)
	if err != nil {
		return fmt.Errorf("serialize bindings: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO checkpoints (id, name, bindings, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			bindings = excluded.bindings,
			created_at = excluded.created_at
	`, uuid.New().String(), name, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save checkpoint %q: %w", name, err)
	}
	return nil
}

// LoadCheckpoint returns the named checkpoint, or found=false when no
// checkpoint exists under that name.
func (s *SQLiteStore) LoadCheckpoint(name string) (*Checkpoint, bool, error) {
	if s.db == nil {
		return nil, false, fmt.Errorf("database not opened")
	}

	var cp Checkpoint
	var raw, createdAt string
	err := s.db.QueryRow(`
		SELECT id, name, bindings, created_at FROM checkpoints
		WHERE name = ?
	`, name).Scan(&cp.ID, &cp.Name, &raw, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load checkpoint %q: %w", name, err)
	}

	if err := decodeCheckpoint(&cp, raw, createdAt); err != nil {
		return nil, false, err
	}
	return &cp, true, nil
}

// ListCheckpoints returns all checkpoints, most recent first.
func (s *SQLiteStore) ListCheckpoints() ([]*Checkpoint, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`
		SELECT id, name, bindings, created_at FROM checkpoints
		ORDER BY created_at DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Checkpoint
	for rows.Next() {
		var cp Checkpoint
		var raw, createdAt string
		if err := rows.Scan(&cp.ID, &cp.Name, &raw, &createdAt); err != nil {
			return nil, fmt.Errorf("scan checkpoint: %w", err)
		}
		if err := decodeCheckpoint(&cp, raw, createdAt); err != nil {
			return nil, err
		}
		out = append(out, &cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkpoints: %w", err)
	}
	return out, nil
}

// decodeCheckpoint fills a checkpoint from its serialized columns.
func decodeCheckpoint(cp *Checkpoint, raw, createdAt string) error {
	if err := yaml.Unmarshal([]byte(raw), &cp.Bindings); err != nil {
		return fmt.Errorf("decode checkpoint %q: %w", cp.Name, err)
	}
	if cp.Bindings == nil {
		cp.Bindings = map[string]expr.Value{}
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return fmt.Errorf("decode checkpoint %q timestamp: %w", cp.Name, err)
	}
	cp.CreatedAt = ts
	return nil
}

// DeleteCheckpoint removes the named checkpoint.
func (s *SQLiteStore) DeleteCheckpoint(name string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("database not opened")
	}

	res, err := s.db.Exec(`DELETE FROM checkpoints WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("delete checkpoint %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete checkpoint %q: %w", name, err)
	}
	return n > 0, nil
}
