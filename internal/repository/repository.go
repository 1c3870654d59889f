package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/BerylCAtieno/document-validator-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// Repository maps a session to its current document. Get returns nil, nil
// when the session has none.
type Repository interface {
	Get(ctx context.Context, sessionID string) (*models.UploadedDocument, error)
	Set(ctx context.Context, sessionID string, doc *models.UploadedDocument) error
	Clear(ctx context.Context, sessionID string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, sessionID string) (*models.UploadedDocument, error) {
	var doc models.UploadedDocument

	query := `
		SELECT filename, storage_path, size, uploaded_at
		FROM current_documents
		WHERE session_id = ?
	`

	err := r.db.GetContext(ctx, &doc, query, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *repository) Set(ctx context.Context, sessionID string, doc *models.UploadedDocument) error {
	query := `
		INSERT INTO current_documents (session_id, filename, storage_path, size, uploaded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			filename = excluded.filename,
			storage_path = excluded.storage_path,
			size = excluded.size,
			uploaded_at = excluded.uploaded_at
	`

	_, err := r.db.ExecContext(ctx, query,
		sessionID,
		doc.Filename,
		doc.StoragePath,
		doc.Size,
		doc.UploadedAt.UTC(),
	)

	return err
}

func (r *repository) Clear(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM current_documents WHERE session_id = ?`, sessionID)
	return err
}
