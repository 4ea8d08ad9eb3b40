package library

import (
	"context"
	"database/sql"
	"time"
)

// Recent is one recently opened sheet.
type Recent struct {
	Path       string
	LastOpened time.Time
}

// Session is the set of documents open when the editor last quit.
type Session struct {
	Paths   []string
	Current string
}

// Library handles recents and session persistence.
type Library struct {
	db *sql.DB
}

// New wraps an open, migrated database.
func New(db *sql.DB) *Library {
	return &Library{db: db}
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Touch records that a sheet was opened or created now.
func (l *Library) Touch(ctx context.Context, path string) error {
	_, err := l.db.ExecContext(ctx, `
	INSERT INTO recent_sheets(path, last_opened_at)
	VALUES (?, CURRENT_TIMESTAMP)
	ON CONFLICT(path) DO UPDATE SET last_opened_at=CURRENT_TIMESTAMP;
	`, path)
	return err
}

// Forget drops a sheet from the recents list.
func (l *Library) Forget(ctx context.Context, path string) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM recent_sheets WHERE path = ?`, path)
	return err
}

// Recents lists recently opened sheets, newest first.
func (l *Library) Recents(ctx context.Context, limit int) ([]Recent, error) {
	rows, err := l.db.QueryContext(ctx, `
	SELECT path, last_opened_at FROM recent_sheets
	ORDER BY last_opened_at DESC, path ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Recent
	for rows.Next() {
		var r Recent
		if err := rows.Scan(&r.Path, &r.LastOpened); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveSession replaces the stored session with the given document set.
func (l *Library) SaveSession(ctx context.Context, s Session) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM session_documents`); err != nil {
		_ = tx.Rollback()
		return err
	}
	for i, path := range s.Paths {
		current := 0
		if path == s.Current {
			current = 1
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO session_documents(position, path, is_current)
		VALUES (?, ?, ?)`, i, path, current); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadSession returns the stored session, empty when none was saved.
func (l *Library) LoadSession(ctx context.Context) (Session, error) {
	rows, err := l.db.QueryContext(ctx, `
	SELECT path, is_current FROM session_documents ORDER BY position`)
	if err != nil {
		return Session{}, err
	}
	defer rows.Close()
	var s Session
	for rows.Next() {
		var path string
		var current int
		if err := rows.Scan(&path, &current); err != nil {
			return Session{}, err
		}
		s.Paths = append(s.Paths, path)
		if current != 0 {
			s.Current = path
		}
	}
	return s, rows.Err()
}
