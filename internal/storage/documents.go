// ABOUTME: Document CRUD for the SQLite backend.
// ABOUTME: Upserts by (owner, kind) so each pair holds exactly one body.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type documentRow struct {
	Owner     string `db:"owner"`
	Kind      string `db:"kind"`
	Body      string `db:"body"`
	UpdatedAt string `db:"updated_at"`
}

func (r documentRow) toDocument() (*Document, error) {
	updated, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", r.UpdatedAt, err)
	}
	return &Document{
		Owner:     r.Owner,
		Kind:      Kind(r.Kind),
		Body:      json.RawMessage(r.Body),
		UpdatedAt: updated,
	}, nil
}

// GetDocument retrieves one document.
func (d *DB) GetDocument(owner string, kind Kind) (*Document, error) {
	var row documentRow
	err := d.db.Get(&row,
		`SELECT owner, kind, body, updated_at FROM documents WHERE owner = ? AND kind = ?`,
		owner, string(kind))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(owner, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return row.toDocument()
}

// PutDocument inserts or replaces a document.
func (d *DB) PutDocument(doc *Document) error {
	if err := validateKey(doc.Owner, doc.Kind); err != nil {
		return err
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now()
	}

	row := documentRow{
		Owner:     doc.Owner,
		Kind:      string(doc.Kind),
		Body:      string(doc.Body),
		UpdatedAt: doc.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	_, err := d.db.NamedExec(`
		INSERT INTO documents (owner, kind, body, updated_at)
		VALUES (:owner, :kind, :body, :updated_at)
		ON CONFLICT(owner, kind) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at`, row)
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	return nil
}

// DeleteDocument removes a document.
func (d *DB) DeleteDocument(owner string, kind Kind) error {
	result, err := d.db.Exec(`DELETE FROM documents WHERE owner = ? AND kind = ?`, owner, string(kind))
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound(owner, kind)
	}
	return nil
}

// ListDocuments returns documents ordered by owner then kind.
func (d *DB) ListDocuments(owner string) ([]*Document, error) {
	query := `SELECT owner, kind, body, updated_at FROM documents`
	var args []any
	if owner != "" {
		query += ` WHERE owner = ?`
		args = append(args, owner)
	}
	query += ` ORDER BY owner, kind`

	var rows []documentRow
	if err := d.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]*Document, 0, len(rows))
	for _, r := range rows {
		doc, err := r.toDocument()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
