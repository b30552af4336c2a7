package docstore

import (
	"context"
	"errors"

	"github.com/vbonduro/fiximages/internal/domain"
)

// ErrNotFound is returned by Update when the document does not exist.
var ErrNotFound = errors.New("document not found")

type DocumentStore interface {
	// List returns every document in collection.
	List(ctx context.Context, collection string) ([]*domain.Document, error)
	// Update writes fields onto an existing document, leaving all other
	// fields untouched.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Close() error
}
