package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgate/admission-portal/internal/app/models"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
)

// IDocumentRepository defines the interface for document persistence
type IDocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	ListByApplicationID(ctx context.Context, applicationID int64) ([]*models.Document, error)
	GetByApplicationAndType(ctx context.Context, applicationID int64, docType models.DocumentType) (*models.Document, error)
	SetVerification(ctx context.Context, id int64, isVerified bool, notes string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

const documentColumns = `id, application_id, student_id, document_type, file_name, file_url,
	storage_key, file_size, mime_type, is_verified, verification_notes, uploaded_at`

// DocumentRepository handles document persistence
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	doc := &models.Document{}
	err := row.Scan(
		&doc.ID, &doc.ApplicationID, &doc.StudentID, &doc.DocumentType,
		&doc.FileName, &doc.FileURL, &doc.StorageKey, &doc.FileSize,
		&doc.MimeType, &doc.IsVerified, &doc.VerificationNotes, &doc.UploadedAt)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Create inserts a new document row and returns its ID
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO documents (application_id, student_id, document_type, file_name,
			file_url, storage_key, file_size, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		doc.ApplicationID, doc.StudentID, doc.DocumentType, doc.FileName,
		doc.FileURL, doc.StorageKey, doc.FileSize, doc.MimeType).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating document: %w", err)
	}
	return id, nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	doc, err := scanDocument(r.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error fetching document: %w", err)
	}
	return doc, nil
}

// ListByApplicationID returns all documents attached to an application
func (r *DocumentRepository) ListByApplicationID(ctx context.Context, applicationID int64) ([]*models.Document, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE application_id = $1 ORDER BY uploaded_at`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return docs, nil
}

// GetByApplicationAndType finds the existing document of a given type, if any
func (r *DocumentRepository) GetByApplicationAndType(ctx context.Context, applicationID int64, docType models.DocumentType) (*models.Document, error) {
	doc, err := scanDocument(r.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE application_id = $1 AND document_type = $2`,
		applicationID, docType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error fetching document: %w", err)
	}
	return doc, nil
}

// SetVerification records an admin verification decision on a document
func (r *DocumentRepository) SetVerification(ctx context.Context, id int64, isVerified bool, notes string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE documents SET is_verified = $1, verification_notes = $2 WHERE id = $3`,
		isVerified, notes, id)
	if err != nil {
		return fmt.Errorf("error updating document verification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// Delete removes a document row
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// Count returns the total number of stored documents
func (r *DocumentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting documents: %w", err)
	}
	return count, nil
}
