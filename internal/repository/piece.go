package repository

import (
	"context"

	"rhdocs/internal/model"
)

// PieceRepository defines data access for supporting documents using SQL queries only.
// Missing rows are reported as sql.ErrNoRows; mapping to domain errors is left to callers.
type PieceRepository interface {
	// Create inserts a new document record and returns it with its generated ID.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Update overwrites the metadata and file columns of doc.ID.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns documents newest first.
	List(ctx context.Context, f ListFilter) ([]model.Document, error)

	// UpdateStatus sets the workflow status of a document.
	UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id int64) error
}

// ListFilter narrows List.
type ListFilter struct {
	// OwnerID keeps one collaborator's documents; 0 keeps all.
	OwnerID int64
	// Limit bounds the result when positive. Offset applies only with a Limit.
	Limit  int
	Offset int
}
