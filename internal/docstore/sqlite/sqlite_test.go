package sqlite

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fiximages/internal/db"
	"github.com/vbonduro/fiximages/internal/docstore"
	"github.com/vbonduro/fiximages/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteDocumentStore {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	s := NewSQLiteDocumentStore(d)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteDocumentStorePutAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Put(ctx, "galleries", &domain.Document{
		ID:     "a1",
		Fields: map[string]any{"downloadURL": "http://x/a1.jpg", "size": 1024},
	})
	require.NoError(t, err)

	doc, err := s.Get(ctx, "galleries", "a1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "a1", doc.ID)
	assert.Equal(t, "http://x/a1.jpg", doc.Fields["downloadURL"])
	assert.Equal(t, json.Number("1024"), doc.Fields["size"])
}

func TestSQLiteDocumentStoreGet_NotFound(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Get(context.Background(), "galleries", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
	assert.Nil(t, doc)
}

func TestSQLiteDocumentStoreList_ScopedToCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "galleries", &domain.Document{ID: "b"}))
	require.NoError(t, s.Put(ctx, "galleries", &domain.Document{ID: "a"}))
	require.NoError(t, s.Put(ctx, "images", &domain.Document{ID: "c"}))

	docs, err := s.List(ctx, "galleries")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
	assert.NotNil(t, docs[0].Fields)
}

func TestSQLiteDocumentStoreList_Empty(t *testing.T) {
	s := newTestStore(t)

	docs, err := s.List(context.Background(), "galleries")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSQLiteDocumentStoreUpdate_TouchesOnlyNamedFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "galleries", &domain.Document{
		ID:     "a1",
		Fields: map[string]any{"fileName": "a1.jpg", "category": "weddings"},
	}))

	err := s.Update(ctx, "galleries", "a1", map[string]any{
		"originalName": "a1.jpg",
		"tags":         []string{},
		"width":        0,
	})
	require.NoError(t, err)

	doc, err := s.Get(ctx, "galleries", "a1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "a1.jpg", doc.Fields["fileName"])
	assert.Equal(t, "weddings", doc.Fields["category"])
	assert.Equal(t, "a1.jpg", doc.Fields["originalName"])
	assert.Equal(t, []any{}, doc.Fields["tags"])
	assert.Equal(t, json.Number("0"), doc.Fields["width"])
}

func TestSQLiteDocumentStoreUpdate_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.Update(context.Background(), "galleries", "missing", map[string]any{"category": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestSQLiteDocumentStoreUpdate_KeepsNestedNulls(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "galleries", &domain.Document{ID: "a1"}))

	err := s.Update(ctx, "galleries", "a1", map[string]any{
		"uploadedAt": map[string]any{"_seconds": 1, "tz": nil},
		"tags":       []any{"red", nil},
	})
	require.NoError(t, err)

	doc, err := s.Get(ctx, "galleries", "a1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"_seconds": json.Number("1"), "tz": nil}, doc.Fields["uploadedAt"])
	assert.Equal(t, []any{"red", nil}, doc.Fields["tags"])
}

func TestSQLiteDocumentStoreUpdate_ReplacesObjectWholesale(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "galleries", &domain.Document{
		ID:     "a1",
		Fields: map[string]any{"uploadedAt": map[string]any{"_seconds": 5, "_nanoseconds": 7}},
	}))

	err := s.Update(ctx, "galleries", "a1", map[string]any{"uploadedAt": map[string]any{"_seconds": 1}})
	require.NoError(t, err)

	doc, err := s.Get(ctx, "galleries", "a1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"_seconds": json.Number("1")}, doc.Fields["uploadedAt"])
}

func TestSQLiteDocumentStoreUpdate_FieldNameWithDot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "galleries", &domain.Document{ID: "a1"}))
	require.NoError(t, s.Update(ctx, "galleries", "a1", map[string]any{"meta.width": 0}))

	doc, err := s.Get(ctx, "galleries", "a1")
	require.NoError(t, err)
	assert.Equal(t, json.Number("0"), doc.Fields["meta.width"])
}

func TestSQLiteDocumentStoreUpdate_RejectsQuotedFieldName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "galleries", &domain.Document{ID: "a1"}))
	err := s.Update(ctx, "galleries", "a1", map[string]any{`bad"name`: 1})
	assert.ErrorContains(t, err, "invalid field name")
}
