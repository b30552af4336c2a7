package reconcile

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// progress writes the human-readable per-record report. Write errors are
// ignored; progress is advisory.
type progress struct {
	w io.Writer
}

func (p progress) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}

func (p progress) start(collection string, count int, dryRun bool) {
	mode := ""
	if dryRun {
		mode = " (dry run, nothing will be written)"
	}
	p.printf("Reconciling %d documents in %q%s\n", count, collection, mode)
}

func (p progress) visiting(id string) {
	p.printf("Processing document %s...\n", id)
}

func (p progress) adding(c Change) {
	p.printf("  + adding %s: %s\n", c.Field, formatValue(c.Value))
}

func (p progress) missingURL(id string) {
	p.printf("  ! no URL found for document %s, skipping\n", id)
}

func (p progress) updated(id string, dryRun bool) {
	if dryRun {
		p.printf("  ~ would update document %s\n", id)
		return
	}
	p.printf("  ✓ updated document %s\n", id)
}

func (p progress) unchanged(id string) {
	p.printf("  ✓ document %s already has correct structure\n", id)
}

func (p progress) failed(id string, err error) {
	p.printf("  ✗ failed to update document %s: %v\n", id, err)
}

func (p progress) summary(s Summary) {
	p.printf("\nData standardization complete\n")
	p.printf("Processed: %d documents\n", s.Processed)
	p.printf("Fixed:     %d documents\n", s.Fixed)
	p.printf("Skipped:   %d documents (no URL source)\n", s.Skipped)
	p.printf("Failed:    %d documents\n", s.Failed)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case time.Time:
		return val.Format(time.RFC3339)
	case string:
		if val == "" {
			return `""`
		}
		return val
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}
