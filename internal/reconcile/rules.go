package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/vbonduro/fiximages/internal/domain"
)

// ErrMissingURLSource means a record has none of storageUrl, downloadURL or
// url. Such a record is skipped and left untouched.
var ErrMissingURLSource = errors.New("no URL source")

const defaultCategory = "uncategorized"

// Plan computes the patch for doc. It has no side effects; now is used only
// when neither uploadedAt nor createdAt is present.
func Plan(doc *domain.Document, now time.Time) (Patch, error) {
	var p Patch

	planOriginalName(doc, &p)
	planUploadedAt(doc, now, &p)
	if err := planStorageURL(doc, &p); err != nil {
		return Patch{}, err
	}
	planDownloadURL(doc, &p)
	planDefaults(doc, &p)

	return p, nil
}

func planOriginalName(doc *domain.Document, p *Patch) {
	if doc.Has(domain.FieldOriginalName) {
		return
	}
	if fileName, ok := doc.Lookup(domain.FieldFileName); ok {
		p.set(domain.FieldOriginalName, fileName)
		return
	}
	p.set(domain.FieldOriginalName, fmt.Sprintf("image_%s", doc.ID))
}

func planUploadedAt(doc *domain.Document, now time.Time, p *Patch) {
	if doc.Has(domain.FieldUploadedAt) {
		return
	}
	if createdAt, ok := doc.Lookup(domain.FieldCreatedAt); ok {
		p.set(domain.FieldUploadedAt, createdAt)
		return
	}
	p.set(domain.FieldUploadedAt, now)
}

func planStorageURL(doc *domain.Document, p *Patch) error {
	if doc.Has(domain.FieldStorageURL) {
		return nil
	}
	for _, alias := range []string{domain.FieldDownloadURL, domain.FieldURL} {
		if v, ok := doc.Lookup(alias); ok {
			p.set(domain.FieldStorageURL, v)
			return nil
		}
	}
	return ErrMissingURLSource
}

// planDownloadURL prefers storageUrl, including a value planned just before.
// With no source at all the field stays unset.
func planDownloadURL(doc *domain.Document, p *Patch) {
	if doc.Has(domain.FieldDownloadURL) {
		return
	}
	if v, ok := doc.Lookup(domain.FieldStorageURL); ok {
		p.set(domain.FieldDownloadURL, v)
		return
	}
	if v, ok := p.Get(domain.FieldStorageURL); ok {
		p.set(domain.FieldDownloadURL, v)
		return
	}
	if v, ok := doc.Lookup(domain.FieldURL); ok {
		p.set(domain.FieldDownloadURL, v)
	}
}

func planDefaults(doc *domain.Document, p *Patch) {
	defaults := []Change{
		{domain.FieldFileName, fmt.Sprintf("image_%s.jpg", doc.ID)},
		{domain.FieldCategory, defaultCategory},
		{domain.FieldTags, []string{}},
		{domain.FieldAltText, ""},
		{domain.FieldDescription, ""},
		{domain.FieldSize, 0},
		{domain.FieldWidth, 0},
		{domain.FieldHeight, 0},
	}
	for _, d := range defaults {
		if !doc.Has(d.Field) {
			p.set(d.Field, d.Value)
		}
	}
}
