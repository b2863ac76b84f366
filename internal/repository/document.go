package repository

import (
	"context"

	"travelapi/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// Every method is scoped to the owning user.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns the user's document with the given ID.
	FindByID(ctx context.Context, userID, id string) (*model.Document, error)

	// List returns a page of the user's documents, newest first, and the total count.
	List(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Document], error)

	// ListWithExpiry returns all of the user's documents that have an expiry date.
	ListWithExpiry(ctx context.Context, userID string) ([]model.Document, error)

	// Update overwrites the mutable columns of the user's document and returns the stored row.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Delete removes the user's document. It returns sql.ErrNoRows if nothing was deleted.
	Delete(ctx context.Context, userID, id string) error
}
