package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vbonduro/fiximages/internal/docstore"
	"github.com/vbonduro/fiximages/internal/domain"
)

type FirestoreDocumentStore struct {
	client *firestore.Client
}

// NewFirestoreDocumentStore connects to projectID. An empty projectID is
// detected from the credentials; an empty credentialsFile falls back to
// application default credentials.
func NewFirestoreDocumentStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreDocumentStore, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreDocumentStore{client: client}, nil
}

func (s *FirestoreDocumentStore) List(ctx context.Context, collection string) ([]*domain.Document, error) {
	it := s.client.Collection(collection).Documents(ctx)
	defer it.Stop()

	var docs []*domain.Document
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", err)
		}
		docs = append(docs, &domain.Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, toUpdates(fields))
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("update %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func (s *FirestoreDocumentStore) Close() error {
	return s.client.Close()
}

// toUpdates converts a field map into top-level field updates. FieldPath is
// used instead of Path so names are never split on dots.
func toUpdates(fields map[string]any) []firestore.Update {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	updates := make([]firestore.Update, 0, len(names))
	for _, name := range names {
		updates = append(updates, firestore.Update{
			FieldPath: firestore.FieldPath{name},
			Value:     fields[name],
		})
	}
	return updates
}
