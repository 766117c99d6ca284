package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ docsearch.IndexReader = (*IndexStore)(nil)
	_ docsearch.IndexWriter = (*IndexStore)(nil)
)

// Build describes the most recent index write.
type Build struct {
	ID      string
	Entries int
	BuiltAt time.Time
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	BaseURL  *string
	PageOnly bool

	Limit  int
	Offset int
}

// IndexStore implements index storage using SQLite.
type IndexStore struct {
	db  *DB
	now func() time.Time
}

// NewIndexStore creates a new IndexStore.
func NewIndexStore(db *DB) *IndexStore {
	return &IndexStore{db: db, now: time.Now}
}

// WriteIndex replaces all stored entries in a single transaction.
func (s *IndexStore) WriteIndex(ctx context.Context, entries []docsearch.IndexEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM builds"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, position, url, base_url, title, page_title, content, section, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), i, e.URL, e.BaseURL(),
			e.Title, e.PageTitle, e.Content, e.Section, hashContent(e.Content)); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO builds (id, entry_count, built_at) VALUES (?, ?, ?)
	`, uuid.New().String(), len(entries), s.now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}

// ReadIndex returns all entries in index order.
// Returns ENOTFOUND if no index has been written.
func (s *IndexStore) ReadIndex(ctx context.Context) ([]docsearch.IndexEntry, error) {
	if _, err := s.LastBuild(ctx); err != nil {
		return nil, err
	}

	entries, err := s.FindEntries(ctx, EntryFilter{})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []docsearch.IndexEntry{}
	}
	return entries, nil
}

// LastBuild returns the most recent index write.
func (s *IndexStore) LastBuild(ctx context.Context) (*Build, error) {
	var b Build
	var builtAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, entry_count, built_at FROM builds ORDER BY built_at DESC LIMIT 1
	`).Scan(&b.ID, &b.Entries, &builtAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "no index has been built")
	}
	if err != nil {
		return nil, err
	}

	b.BuiltAt, err = parseRFC3339(builtAt, "built_at")
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindEntries retrieves entries matching the filter in index order.
// Entries whose stored content hash does not match their content are
// reported as EINVALID.
func (s *IndexStore) FindEntries(ctx context.Context, filter EntryFilter) ([]docsearch.IndexEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, title, page_title, content, section, content_hash FROM entries WHERE 1=1")

	if filter.BaseURL != nil {
		query.WriteString(" AND base_url = ?")
		args = append(args, *filter.BaseURL)
	}
	if filter.PageOnly {
		query.WriteString(" AND section = ''")
	}

	query.WriteString(" ORDER BY position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []docsearch.IndexEntry
	for rows.Next() {
		var e docsearch.IndexEntry
		var hash string

		if err := rows.Scan(&e.URL, &e.Title, &e.PageTitle, &e.Content, &e.Section, &hash); err != nil {
			return nil, err
		}
		if hash != hashContent(e.Content) {
			return nil, docsearch.Errorf(docsearch.EINVALID, "entry %q is corrupt", e.URL)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
