package repository

import (
	"context"

	"github.com/jminango20/data-docs-api/domain"
)

// DefaultPageSize bounds a secondary query page when the caller supplies none.
const DefaultPageSize = 100

// MaxBatchValues caps the value set accepted by FindByFieldIn.
const MaxBatchValues = 50

// PageOptions carries cursor pagination parameters for secondary queries.
// PageState is the opaque continuation token returned by a previous page;
// nil starts from the beginning.
type PageOptions struct {
	PageSize  int
	PageState []byte
}

// Page is one page of secondary query results. PageState is non-nil only
// when more rows remain.
type Page struct {
	Documents []domain.Document
	PageState []byte
}

// DocumentRepository is the persistence gateway for documents.
type DocumentRepository interface {
	// Insert assigns a fresh id and creation timestamp, writes the full
	// record and returns the assigned id.
	Insert(ctx context.Context, doc *domain.Document) (string, error)
	// Delete removes a record by primary key. Deleting an absent id is not
	// an error at this layer; existence is the caller's concern.
	Delete(ctx context.Context, id string) error
	// GetByID returns the record with the given id or domain.ErrDocumentNotFound.
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	// FindByField returns one page of records matching a non-unique field.
	FindByField(ctx context.Context, field domain.SearchField, value string, opts PageOptions) (*Page, error)
	// FindByFieldIn queries every value concurrently, pagination disabled,
	// and concatenates results in input-value order.
	FindByFieldIn(ctx context.Context, field domain.SearchField, values []string) ([]domain.Document, error)
	// Update applies the given external-name field updates to one record.
	// An empty map succeeds without contacting storage.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}
