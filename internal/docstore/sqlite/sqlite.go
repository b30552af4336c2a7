package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vbonduro/fiximages/internal/docstore"
	"github.com/vbonduro/fiximages/internal/domain"
)

// SQLiteDocumentStore keeps each document as a JSON object in the documents
// table, keyed by collection and id.
type SQLiteDocumentStore struct {
	db *sql.DB
}

func NewSQLiteDocumentStore(db *sql.DB) *SQLiteDocumentStore {
	return &SQLiteDocumentStore{db: db}
}

func (s *SQLiteDocumentStore) List(ctx context.Context, collection string) ([]*domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, data FROM documents WHERE collection = ? ORDER BY id ASC
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		var (
			id   string
			data string
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		fields, err := decodeFields(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
		docs = append(docs, &domain.Document{ID: id, Fields: fields})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// Get returns one document, or docstore.ErrNotFound.
func (s *SQLiteDocumentStore) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM documents WHERE collection = ? AND id = ?
	`, collection, id).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	fields, err := decodeFields(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return &domain.Document{ID: id, Fields: fields}, nil
}

// Put creates or replaces a whole document.
func (s *SQLiteDocumentStore) Put(ctx context.Context, collection string, doc *domain.Document) error {
	data, err := encodeFields(doc.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", doc.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = datetime('now')
	`, collection, doc.ID, data)
	if err != nil {
		return fmt.Errorf("failed to put document: %w", err)
	}
	return nil
}

// Update sets each top-level field with json_set, storing every value
// verbatim. Nested nulls survive, unlike a merge patch.
func (s *SQLiteDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.ContainsAny(name, `"\`) {
			return fmt.Errorf("invalid field name %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]any, 0, 2*len(names)+2)
	for _, name := range names {
		value, err := json.Marshal(fields[name])
		if err != nil {
			return fmt.Errorf("failed to encode field %s for %s: %w", name, id, err)
		}
		args = append(args, `$."`+name+`"`, string(value))
	}
	args = append(args, collection, id)

	pairs := strings.TrimSuffix(strings.Repeat("?, json(?), ", len(names)), ", ")
	query := `UPDATE documents SET data = json_set(data, ` + pairs + `), updated_at = datetime('now')
		WHERE collection = ? AND id = ?`

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("update %s/%s: %w", collection, id, docstore.ErrNotFound)
	}

	return nil
}

func (s *SQLiteDocumentStore) Close() error {
	return s.db.Close()
}

func encodeFields(fields map[string]any) (string, error) {
	if fields == nil {
		return "{}", nil
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeFields keeps JSON numbers as json.Number so integer metadata such as
// size survives a round trip unchanged.
func decodeFields(data string) (map[string]any, error) {
	fields := make(map[string]any)
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
