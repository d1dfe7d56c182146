package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rhdocs/internal/model"
	"rhdocs/internal/repository"
)

// PiecePostgres is a PostgreSQL implementation of repository.PieceRepository.
type PiecePostgres struct {
	db *sql.DB
}

// NewPiecePostgres creates a new PiecePostgres repository.
func NewPiecePostgres(db *sql.DB) *PiecePostgres {
	return &PiecePostgres{db: db}
}

var _ repository.PieceRepository = (*PiecePostgres)(nil)

const pieceColumns = `id, collaborateur_id, nom, type, description, fichier, nom_fichier, content_type, taille, statut, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPiece(s scanner) (*model.Document, error) {
	var d model.Document
	if err := s.Scan(
		&d.ID,
		&d.OwnerID,
		&d.DisplayName,
		&d.DocumentType,
		&d.Description,
		&d.StoredFileReference,
		&d.OriginalFilename,
		&d.ContentType,
		&d.Size,
		&d.Status,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new row. id, statut and created_at default on the database side
// when left zero.
func (r *PiecePostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO pieces_justificatives
			(collaborateur_id, nom, type, description, fichier, nom_fichier, content_type, taille, statut, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE(NULLIF($9, ''), 'PENDING'), COALESCE($10, NOW()))
		RETURNING ` + pieceColumns
	var createdAt any
	if !doc.CreatedAt.IsZero() {
		createdAt = doc.CreatedAt
	}
	row := r.db.QueryRowContext(ctx, q,
		doc.OwnerID,
		doc.DisplayName,
		string(doc.DocumentType),
		doc.Description,
		doc.StoredFileReference,
		doc.OriginalFilename,
		doc.ContentType,
		doc.Size,
		string(doc.Status),
		createdAt,
	)
	return scanPiece(row)
}

// Update overwrites every mutable column except statut.
func (r *PiecePostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE pieces_justificatives
		SET collaborateur_id = $2, nom = $3, type = $4, description = $5,
			fichier = $6, nom_fichier = $7, content_type = $8, taille = $9
		WHERE id = $1
		RETURNING ` + pieceColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OwnerID,
		doc.DisplayName,
		string(doc.DocumentType),
		doc.Description,
		doc.StoredFileReference,
		doc.OriginalFilename,
		doc.ContentType,
		doc.Size,
	)
	return scanPiece(row)
}

// FindByID fetches a single document by its ID.
func (r *PiecePostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `SELECT ` + pieceColumns + ` FROM pieces_justificatives WHERE id = $1`
	return scanPiece(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents ordered by creation date, newest first.
func (r *PiecePostgres) List(ctx context.Context, f repository.ListFilter) ([]model.Document, error) {
	q := `SELECT ` + pieceColumns + ` FROM pieces_justificatives`
	var args []any
	if f.OwnerID > 0 {
		args = append(args, f.OwnerID)
		q += fmt.Sprintf(" WHERE collaborateur_id = $%d", len(args))
	}
	q += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit, max(f.Offset, 0))
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanPiece(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus sets statut and returns the updated row.
func (r *PiecePostgres) UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Document, error) {
	const q = `UPDATE pieces_justificatives SET statut = $2 WHERE id = $1 RETURNING ` + pieceColumns
	return scanPiece(r.db.QueryRowContext(ctx, q, id, string(status)))
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *PiecePostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM pieces_justificatives WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
