package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentLookup(t *testing.T) {
	doc := &Document{
		ID: "a1",
		Fields: map[string]any{
			FieldFileName:    "a1.jpg",
			FieldDescription: nil,
			FieldAltText:     "",
		},
	}

	v, ok := doc.Lookup(FieldFileName)
	assert.True(t, ok)
	assert.Equal(t, "a1.jpg", v)

	_, ok = doc.Lookup(FieldDescription)
	assert.False(t, ok, "nil value counts as absent")

	_, ok = doc.Lookup(FieldCategory)
	assert.False(t, ok)

	assert.True(t, doc.Has(FieldAltText), "empty string is present")
}

func TestDocumentLookup_NilFields(t *testing.T) {
	var doc *Document
	assert.False(t, doc.Has(FieldURL))
	assert.False(t, (&Document{ID: "x"}).Has(FieldURL))
}
