package store

import (
	"context"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS resolutions (
    id          TEXT PRIMARY KEY,
    created_at  INTEGER NOT NULL,

    op          TEXT NOT NULL,
    base        TEXT NOT NULL,
    ref         TEXT NOT NULL,
    result      TEXT,
    error       TEXT
);

CREATE INDEX IF NOT EXISTS idx_resolutions_created ON resolutions(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_resolutions_op ON resolutions(op);

CREATE VIRTUAL TABLE IF NOT EXISTS resolutions_fts USING fts5(
    base,
    ref,
    result,
    content='resolutions',
    content_rowid='rowid'
);

-- FTS5 external content triggers
CREATE TRIGGER IF NOT EXISTS resolutions_ai AFTER INSERT ON resolutions BEGIN
  INSERT INTO resolutions_fts(rowid, base, ref, result) VALUES (new.rowid, new.base, new.ref, new.result);
END;
CREATE TRIGGER IF NOT EXISTS resolutions_ad AFTER DELETE ON resolutions BEGIN
  INSERT INTO resolutions_fts(resolutions_fts, rowid, base, ref, result) VALUES('delete', old.rowid, old.base, old.ref, old.result);
END;
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return s.db.PingContext(ctx)
}
