package domain

// Image record field names as stored in the gallery collection.
const (
	FieldOriginalName = "originalName"
	FieldFileName     = "fileName"
	FieldUploadedAt   = "uploadedAt"
	FieldCreatedAt    = "createdAt"
	FieldStorageURL   = "storageUrl"
	FieldDownloadURL  = "downloadURL"
	FieldURL          = "url"
	FieldCategory     = "category"
	FieldTags         = "tags"
	FieldAltText      = "altText"
	FieldDescription  = "description"
	FieldSize         = "size"
	FieldWidth        = "width"
	FieldHeight       = "height"
)

// Document is one record of a collection: an opaque id and its raw fields.
type Document struct {
	ID     string
	Fields map[string]any
}

// Lookup returns the value of name and whether it is present. A key holding
// nil counts as absent.
func (d *Document) Lookup(name string) (any, bool) {
	if d == nil || d.Fields == nil {
		return nil, false
	}
	v, ok := d.Fields[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (d *Document) Has(name string) bool {
	_, ok := d.Lookup(name)
	return ok
}
