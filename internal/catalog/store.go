package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"bookdup/internal/normalize"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database at dbPath. The
// caller ensures the parent directory exists (config.EnsureDirectories).
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the catalog database file path.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying connection for sibling stores that share the
// catalog database file (prefs).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Add inserts a new record and returns it with its assigned id.
func (s *Store) Add(ctx context.Context, book *Book) (*Book, error) {
	if book == nil {
		return nil, errors.New("book is nil")
	}
	if strings.TrimSpace(book.Title) == "" {
		return nil, errors.New("book title is required")
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO books (
            title, authors_json, identifiers_json, language, series,
            publisher, tags_json, formats_json, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.Title,
		marshalJSON(book.Authors),
		marshalJSON(book.Identifiers),
		nullableString(book.Language),
		nullableString(book.Series),
		nullableString(book.Publisher),
		marshalJSON(book.Tags),
		marshalJSON(book.Formats),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a record by identifier. Returns nil when the record does
// not exist.
func (s *Store) GetByID(ctx context.Context, id int64) (*Book, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// HasID reports whether a record with the given id exists.
func (s *Store) HasID(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("check book id: %w", err)
	}
	return count > 0, nil
}

// Count returns the number of records in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

// Snapshot returns the full set of records, optionally restricted to a scope
// expression matched case-insensitively against title and author values.
// Records come back in insertion order so search output stays reproducible.
func (s *Store) Snapshot(ctx context.Context, scope string) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	needle := strings.ToLower(strings.TrimSpace(scope))
	var books []Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		if needle != "" && !matchesScope(book, needle) {
			continue
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}
	return books, nil
}

func matchesScope(book *Book, needle string) bool {
	if strings.Contains(strings.ToLower(book.Title), needle) {
		return true
	}
	for _, author := range book.Authors {
		if strings.Contains(strings.ToLower(author), needle) {
			return true
		}
	}
	return false
}

// FieldValues returns the distinct raw values of a field across the whole
// catalog with occurrence counts, in first-seen order.
func (s *Store) FieldValues(ctx context.Context, kind normalize.FieldKind) ([]FieldValue, error) {
	books, err := s.Snapshot(ctx, "")
	if err != nil {
		return nil, err
	}

	var order []string
	counts := make(map[string]int)
	record := func(value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}

	for i := range books {
		switch kind {
		case normalize.FieldAuthor:
			for _, author := range books[i].Authors {
				record(author)
			}
		case normalize.FieldSeries:
			record(books[i].Series)
		case normalize.FieldPublisher:
			record(books[i].Publisher)
		case normalize.FieldTag:
			for _, tag := range books[i].Tags {
				record(tag)
			}
		default:
			return nil, fmt.Errorf("unsupported field kind %q", kind)
		}
	}

	values := make([]FieldValue, 0, len(order))
	for _, raw := range order {
		values = append(values, FieldValue{Raw: raw, Count: counts[raw]})
	}
	return values, nil
}

// RenameFieldValue rewrites every occurrence of a raw field value to the
// canonical spelling chosen by the user, returning the number of records
// touched. This is the persistence half of variation consolidation; the
// finder itself never renames.
func (s *Store) RenameFieldValue(ctx context.Context, kind normalize.FieldKind, from, to string) (int64, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return 0, errors.New("rename values must be non-empty")
	}
	if from == to {
		return 0, nil
	}

	books, err := s.Snapshot(ctx, "")
	if err != nil {
		return 0, err
	}

	var touched int64
	for i := range books {
		book := &books[i]
		changed := false
		switch kind {
		case normalize.FieldAuthor:
			changed = replaceValue(book.Authors, from, to)
		case normalize.FieldSeries:
			if book.Series == from {
				book.Series = to
				changed = true
			}
		case normalize.FieldPublisher:
			if book.Publisher == from {
				book.Publisher = to
				changed = true
			}
		case normalize.FieldTag:
			changed = replaceValue(book.Tags, from, to)
		default:
			return 0, fmt.Errorf("unsupported field kind %q", kind)
		}
		if !changed {
			continue
		}
		if err := s.update(ctx, book); err != nil {
			return touched, err
		}
		touched++
	}
	return touched, nil
}

func replaceValue(values []string, from, to string) bool {
	changed := false
	for i, v := range values {
		if v == from {
			values[i] = to
			changed = true
		}
	}
	return changed
}

func (s *Store) update(ctx context.Context, book *Book) error {
	book.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE books
         SET title = ?, authors_json = ?, identifiers_json = ?, language = ?,
             series = ?, publisher = ?, tags_json = ?, formats_json = ?, updated_at = ?
         WHERE id = ?`,
		book.Title,
		marshalJSON(book.Authors),
		marshalJSON(book.Identifiers),
		nullableString(book.Language),
		nullableString(book.Series),
		nullableString(book.Publisher),
		marshalJSON(book.Tags),
		marshalJSON(book.Formats),
		book.UpdatedAt.Format(time.RFC3339Nano),
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// Remove deletes a record by identifier.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete book: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

const bookColumns = "id, title, authors_json, identifiers_json, language, series, publisher, tags_json, formats_json, created_at, updated_at"

func scanBook(scanner interface{ Scan(dest ...any) error }) (*Book, error) {
	var (
		id          int64
		title       string
		authors     sql.NullString
		identifiers sql.NullString
		language    sql.NullString
		series      sql.NullString
		publisher   sql.NullString
		tags        sql.NullString
		formats     sql.NullString
		createdRaw  string
		updatedRaw  string
	)

	if err := scanner.Scan(
		&id,
		&title,
		&authors,
		&identifiers,
		&language,
		&series,
		&publisher,
		&tags,
		&formats,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	book := &Book{
		ID:        id,
		Title:     title,
		Language:  language.String,
		Series:    series.String,
		Publisher: publisher.String,
	}
	if err := unmarshalJSON(authors, &book.Authors); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	if err := unmarshalJSON(identifiers, &book.Identifiers); err != nil {
		return nil, fmt.Errorf("decode identifiers: %w", err)
	}
	if err := unmarshalJSON(tags, &book.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if err := unmarshalJSON(formats, &book.Formats); err != nil {
		return nil, fmt.Errorf("decode formats: %w", err)
	}

	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		book.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		book.UpdatedAt = updated
	}
	return book, nil
}

func marshalJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return nil
	}
	return string(data)
}

func unmarshalJSON(value sql.NullString, dst any) error {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return nil
	}
	return json.Unmarshal([]byte(value.String), dst)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
