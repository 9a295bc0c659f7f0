package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
	_ "modernc.org/sqlite"
)

const (
	// DefaultLimit is the default number of results to return.
	DefaultLimit = 20
	// MaxLimit is the maximum number of results allowed.
	MaxLimit = 500
	// BusyTimeoutMs is the SQLite busy timeout in milliseconds.
	BusyTimeoutMs = 5000
)

// Operations recorded in the history.
const (
	OpMerge  = "merge"
	OpAppend = "append"
	OpEdit   = "edit"
)

// ErrNotFound is returned when no resolution has the requested id.
var ErrNotFound = errors.New("not found")

type Store struct {
	path string
	db   *sql.DB
}

func Open(path string) (*Store, error) {
	return OpenContext(context.Background(), path)
}

// OpenContext opens (creating if needed) the history database at path.
// ":memory:" opens a private in-memory database.
func OpenContext(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	var dsn string
	if path == ":memory:" {
		// WAL doesn't make sense for in-memory DB; use MEMORY journal.
		dsn = fmt.Sprintf("file::memory:?_pragma=journal_mode(MEMORY)&_pragma=busy_timeout(%d)", BusyTimeoutMs)
	} else {
		if err := ensureDir(filepath.Dir(path)); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", path, BusyTimeoutMs)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: the in-memory database lives as long as it does.
	db.SetMaxOpenConns(1)
	s := &Store{path: path, db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }
func (s *Store) Path() string { return s.path }

// Resolution is one recorded operation: Ref resolved against Base gave
// Result, or failed with Error.
type Resolution struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"created_at"`

	Op     string `json:"op"`
	Base   string `json:"base"`
	Ref    string `json:"ref"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type RecordParams struct {
	// ID is generated when empty.
	ID        string
	CreatedAt int64

	Op     string
	Base   string
	Ref    string
	Result string
	Error  string
}

// Record stores a resolution and returns its id.
func (s *Store) Record(ctx context.Context, p RecordParams) (string, error) {
	if strings.TrimSpace(p.Op) == "" {
		return "", fmt.Errorf("missing op")
	}
	if p.ID == "" {
		id, err := nanoid.New()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		p.ID = id
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixMilli()
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO resolutions (id, created_at, op, base, ref, result, error)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, p.ID, p.CreatedAt, p.Op, p.Base, p.Ref, nullIfEmpty(p.Result), nullIfEmpty(p.Error))
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

type ListFilter struct {
	Limit int
	Op    string
	// FailedOnly keeps resolutions that returned an error.
	FailedOnly bool
	From       *time.Time // Inclusive start date
	To         *time.Time // Inclusive end date
}

func (s *Store) List(ctx context.Context, f ListFilter) ([]Resolution, error) {
	limit := f.Limit
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	var (
		wheres []string
		args   []any
	)
	if strings.TrimSpace(f.Op) != "" {
		wheres = append(wheres, "op = ?")
		args = append(args, f.Op)
	}
	if f.FailedOnly {
		wheres = append(wheres, "error IS NOT NULL")
	}
	if f.From != nil {
		wheres = append(wheres, "created_at >= ?")
		args = append(args, f.From.UnixMilli())
	}
	if f.To != nil {
		wheres = append(wheres, "created_at <= ?")
		args = append(args, f.To.UnixMilli())
	}
	whereSQL := ""
	if len(wheres) > 0 {
		whereSQL = "WHERE " + strings.Join(wheres, " AND ")
	}

	q := fmt.Sprintf(`
SELECT id, created_at, op, base, ref, result, error
FROM resolutions
%s
ORDER BY created_at DESC, rowid DESC
LIMIT ?
`, whereSQL)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResolutions(rows)
}

func (s *Store) Get(ctx context.Context, id string) (Resolution, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Resolution{}, fmt.Errorf("empty id")
	}
	var (
		r      Resolution
		result sql.NullString
		errStr sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, created_at, op, base, ref, result, error
FROM resolutions
WHERE id = ?
`, id).Scan(&r.ID, &r.CreatedAt, &r.Op, &r.Base, &r.Ref, &result, &errStr)
	if errors.Is(err, sql.ErrNoRows) {
		return Resolution{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Resolution{}, err
	}
	r.Result = result.String
	r.Error = errStr.String
	return r, nil
}

// Search runs a full-text query over base, reference and result.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Resolution, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.created_at, r.op, r.base, r.ref, r.result, r.error
FROM resolutions_fts f
JOIN resolutions r ON r.rowid = f.rowid
WHERE resolutions_fts MATCH ?
ORDER BY r.created_at DESC, r.rowid DESC
LIMIT ?
`, sanitizeFTSQuery(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResolutions(rows)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("empty id")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM resolutions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type DeleteFilter struct {
	OlderThan time.Duration
	Op        string
}

func (s *Store) DeleteByFilter(ctx context.Context, f DeleteFilter) (int64, error) {
	var (
		wheres []string
		args   []any
	)
	if f.OlderThan > 0 {
		cutoff := time.Now().Add(-f.OlderThan).UnixMilli()
		wheres = append(wheres, "created_at < ?")
		args = append(args, cutoff)
	}
	if strings.TrimSpace(f.Op) != "" {
		wheres = append(wheres, "op = ?")
		args = append(args, f.Op)
	}
	if len(wheres) == 0 {
		return 0, fmt.Errorf("at least one filter required for bulk delete")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM resolutions WHERE `+strings.Join(wheres, " AND "), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanResolutions(rows *sql.Rows) ([]Resolution, error) {
	var out []Resolution
	for rows.Next() {
		var (
			r      Resolution
			result sql.NullString
			errStr sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Op, &r.Base, &r.Ref, &result, &errStr); err != nil {
			return nil, err
		}
		r.Result = result.String
		r.Error = errStr.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func ensureDir(path string) error {
	if path == "." || path == "" {
		return nil
	}
	return os.MkdirAll(path, 0o755)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// sanitizeFTSQuery quotes the query so FTS5 operators (" * - ^ : OR AND NOT
// NEAR) are matched literally.
func sanitizeFTSQuery(q string) string {
	return `"` + strings.ReplaceAll(q, `"`, `""`) + `"`
}
